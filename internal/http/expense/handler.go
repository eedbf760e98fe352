package expense

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadetan/expense-tracking/internal/expense"
	"github.com/hadetan/expense-tracking/internal/http/api"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
	"github.com/hadetan/expense-tracking/internal/importer"
)

type Handler struct {
	svc            *expense.Service
	importSvc      *importer.Service
	maxUploadBytes int64
}

func NewHandler(svc *expense.Service, importSvc *importer.Service, maxUploadBytes int64) *Handler {
	return &Handler{
		svc:            svc,
		importSvc:      importSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/bulk-upload", h.bulkUpload)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Patch("/{id}/approve", h.approve)
		r.Patch("/{id}/reject", h.reject)
	})
}

type createRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"categoryId" validate:"required,uuid"`
	Description string          `json:"description"`
	Date        string          `json:"date" validate:"required"`
}

type updateRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *string          `json:"categoryId" validate:"omitempty,uuid"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := api.Bind(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		UserID:      middleware.CurrentUser(r.Context()).ID,
		CategoryID:  uuid.MustParse(req.CategoryID),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		writeError(w, r, err, "Failed to create expense")
		return
	}

	api.JSON(w, http.StatusCreated, NewResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseListFilter(r.URL.Query(), time.Now())
	if err != nil {
		writeError(w, r, err, "Failed to list expenses")
		return
	}

	page, err := h.svc.List(r.Context(), middleware.Actor(r.Context()), filter)
	if err != nil {
		writeError(w, r, err, "Failed to list expenses")
		return
	}

	api.JSON(w, http.StatusOK, newListResponse(page))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), middleware.Actor(r.Context()), id)
	if err != nil {
		writeError(w, r, err, "Failed to get expense")
		return
	}

	api.JSON(w, http.StatusOK, NewResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := api.Bind(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	params := expense.UpdateParams{
		Amount:      req.Amount,
		Description: req.Description,
	}

	if req.CategoryID != nil {
		params.CategoryID = new(uuid.MustParse(*req.CategoryID))
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "Invalid date format")
			return
		}

		params.Date = &date
	}

	e, err := h.svc.Update(r.Context(), middleware.Actor(r.Context()), id, params)
	if err != nil {
		writeError(w, r, err, "Failed to update expense")
		return
	}

	api.JSON(w, http.StatusOK, NewResponse(e))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to approve expense")
		return
	}

	middleware.Logger(r.Context()).Info("expense approved", "expense_id", id)
	api.JSON(w, http.StatusOK, NewResponse(e))
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if err := api.Bind(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.svc.Reject(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, r, err, "Failed to reject expense")
		return
	}

	middleware.Logger(r.Context()).Info("expense rejected", "expense_id", id)
	api.JSON(w, http.StatusOK, NewResponse(e))
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid expense id")
		return uuid.Nil, false
	}

	return id, true
}

// writeError maps domain errors to responses. Anything unrecognised is logged and reported
// with fallback.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, expense.ErrValidation):
		api.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, expense.ErrInvalidCategory):
		api.Error(w, http.StatusBadRequest, "Invalid category. Category does not exist or does not belong to you.")
	case errors.Is(err, expense.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Expense not found")
	case errors.Is(err, expense.ErrForbidden):
		api.Error(w, http.StatusForbidden, "You do not have permission to access this expense")
	case errors.Is(err, expense.ErrImmutable):
		api.Error(w, http.StatusConflict, "Approved expenses cannot be modified")
	case errors.Is(err, expense.ErrInvalidTransition):
		api.Error(w, http.StatusConflict, "Only pending expenses can be approved or rejected")
	default:
		middleware.Logger(r.Context()).Error(fallback, "error", err)
		api.Error(w, http.StatusInternalServerError, fallback)
	}
}
