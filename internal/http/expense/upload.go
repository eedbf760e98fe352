package expense

import (
	"errors"
	"io"
	"net/http"

	"github.com/hadetan/expense-tracking/internal/http/api"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
	"github.com/hadetan/expense-tracking/internal/importer"
)

const uploadField = "file"

// bulkUpload imports every row of the uploaded file as a PENDING expense of the caller. The
// response is 200 whenever the file itself could be read, even if every row failed.
func (h *Handler) bulkUpload(w http.ResponseWriter, r *http.Request) {
	logger := middleware.Logger(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Error(w, http.StatusRequestEntityTooLarge, "File size exceeds 5MB limit")
			return
		}

		api.Error(w, http.StatusBadRequest, "No file uploaded")

		return
	}

	file, fh, err := r.FormFile(uploadField)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = importer.ContentTypeForFilename(fh.Filename)
	}

	if !importer.Supported(contentType) {
		api.Error(w, http.StatusBadRequest, "Invalid file type. Only CSV and Excel files are allowed.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("failed to read upload", "error", err)
		api.Error(w, http.StatusInternalServerError, "Failed to process file")

		return
	}

	report, err := h.importSvc.Import(r.Context(), middleware.CurrentUser(r.Context()).ID, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUnsupportedType):
			api.Error(w, http.StatusBadRequest, "Unsupported file type. Please upload CSV or Excel file.")
		case errors.Is(err, importer.ErrEmptyFile):
			api.Error(w, http.StatusBadRequest, "File is empty or has no valid data rows")
		case errors.Is(err, importer.ErrNoSheets):
			api.Error(w, http.StatusBadRequest, "Excel file has no sheets")
		case errors.Is(err, importer.ErrUnreadableFile):
			api.Error(w, http.StatusBadRequest, "Unable to read file. Please check the file format.")
		default:
			logger.Error("failed to import expenses", "error", err)
			api.Error(w, http.StatusInternalServerError, "Failed to process file")
		}

		return
	}

	logger.Info("bulk upload processed",
		"file", fh.Filename,
		"total", report.Summary.Total,
		"successful", report.Summary.Successful,
		"failed", report.Summary.Failed,
	)

	api.JSON(w, http.StatusOK, newReportResponse(report))
}
