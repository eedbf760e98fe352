package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/analytics"
	"github.com/hadetan/expense-tracking/internal/http/api"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type categoryTotalResponse struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Total        string    `json:"total"`
	Percentage   float64   `json:"percentage"`
}

type dateRangeResponse struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type summaryResponse struct {
	CurrentMonthTotal     string                  `json:"currentMonthTotal"`
	PreviousMonthTotal    string                  `json:"previousMonthTotal"`
	TrendPercentage       float64                 `json:"trendPercentage"`
	PendingApprovalsCount int                     `json:"pendingApprovalsCount"`
	TotalByCategory       []categoryTotalResponse `json:"totalByCategory"`
	DateRange             dateRangeResponse       `json:"dateRange"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	start, err := parseBound(r.URL.Query().Get("startDate"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid startDate")
		return
	}

	end, err := parseBound(r.URL.Query().Get("endDate"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid endDate")
		return
	}

	if end != nil {
		// A calendar end date covers the whole day.
		end = new(end.Add(24*time.Hour - time.Nanosecond))
	}

	if start != nil && end != nil && start.After(*end) {
		api.Error(w, http.StatusBadRequest, "Start date must be before end date")
		return
	}

	s, err := h.svc.Summary(r.Context(), start, end)
	if err != nil {
		middleware.Logger(r.Context()).Error("failed to compute analytics", "error", err)
		api.Error(w, http.StatusInternalServerError, "Failed to fetch analytics")

		return
	}

	totals := make([]categoryTotalResponse, 0, len(s.TotalByCategory))
	for _, ct := range s.TotalByCategory {
		totals = append(totals, categoryTotalResponse{
			CategoryID:   ct.CategoryID,
			CategoryName: ct.CategoryName,
			Total:        ct.Total.StringFixed(2),
			Percentage:   ct.Percentage,
		})
	}

	api.JSON(w, http.StatusOK, summaryResponse{
		CurrentMonthTotal:     s.CurrentMonthTotal.StringFixed(2),
		PreviousMonthTotal:    s.PreviousMonthTotal.StringFixed(2),
		TrendPercentage:       s.TrendPercentage,
		PendingApprovalsCount: s.PendingApprovalsCount,
		TotalByCategory:       totals,
		DateRange:             dateRangeResponse{StartDate: s.DateRange.Start, EndDate: s.DateRange.End},
	})
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
