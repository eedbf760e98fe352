package category

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hadetan/expense-tracking/internal/category"
	"github.com/hadetan/expense-tracking/internal/http/api"
	expenseHandler "github.com/hadetan/expense-tracking/internal/http/expense"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type createRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context(), middleware.CurrentUser(r.Context()).ID)
	if err != nil {
		middleware.Logger(r.Context()).Error("failed to list categories", "error", err)
		api.Error(w, http.StatusInternalServerError, "Failed to fetch categories")

		return
	}

	resp := make([]expenseHandler.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, expenseHandler.NewCategoryResponse(c))
	}

	api.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := api.Bind(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), middleware.CurrentUser(r.Context()).ID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNameRequired):
			api.Error(w, http.StatusBadRequest, "Category name is required")
		case errors.Is(err, category.ErrDuplicate):
			api.Error(w, http.StatusConflict, "Category already exists")
		default:
			middleware.Logger(r.Context()).Error("failed to create category", "error", err)
			api.Error(w, http.StatusInternalServerError, "Failed to create category")
		}

		return
	}

	api.JSON(w, http.StatusCreated, expenseHandler.NewCategoryResponse(c))
}
