package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hadetan/expense-tracking/internal/export"
	"github.com/hadetan/expense-tracking/internal/http/api"
	expenseHandler "github.com/hadetan/expense-tracking/internal/http/expense"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/template", h.template)
	r.Get("/export", h.download)
}

func (h *Handler) template(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteTemplate(&buf); err != nil {
		middleware.Logger(r.Context()).Error("failed to write template", "error", err)
		api.Error(w, http.StatusInternalServerError, "Failed to generate template")

		return
	}

	writeCSV(w, export.TemplateFilename, buf.Bytes())
}

// download exports the expenses the list endpoint would return for the same query, without
// paging.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	filter, err := expenseHandler.ParseListFilter(r.URL.Query(), now)
	if err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), middleware.Actor(r.Context()), filter, &buf)
	if err != nil {
		middleware.Logger(r.Context()).Error("failed to export expenses", "error", err)
		api.Error(w, http.StatusInternalServerError, "Failed to export expenses")

		return
	}

	middleware.Logger(r.Context()).Info("expenses exported", "count", n)
	writeCSV(w, export.Filename(now), buf.Bytes())
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(data)
}
