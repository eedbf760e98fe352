package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/category"
	"github.com/hadetan/expense-tracking/internal/expense"
	"github.com/hadetan/expense-tracking/internal/importer"
)

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedBy: c.OwnerID, CreatedAt: c.CreatedAt}
}

type submitterResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name"`
}

// Response is an expense as the web client reads it. Amounts are rendered as fixed
// two-decimal strings.
type Response struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"userId"`
	Amount          string             `json:"amount"`
	CategoryID      uuid.UUID          `json:"categoryId"`
	Category        *CategoryResponse  `json:"category,omitempty"`
	User            *submitterResponse `json:"user,omitempty"`
	Description     string             `json:"description"`
	Date            string             `json:"date"`
	Status          expense.Status     `json:"status"`
	RejectionReason *string            `json:"rejectionReason"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func NewResponse(e *expense.Expense) Response {
	resp := Response{
		ID:              e.ID,
		UserID:          e.UserID,
		Amount:          e.Amount.StringFixed(2),
		CategoryID:      e.CategoryID,
		Description:     e.Description,
		Date:            e.Date.Format(time.DateOnly),
		Status:          e.Status,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}

	if e.Category != nil {
		resp.Category = new(NewCategoryResponse(e.Category))
	}

	if e.Submitter != nil {
		resp.User = &submitterResponse{ID: e.Submitter.ID, Email: e.Submitter.Email, Name: e.Submitter.Name}
	}

	return resp
}

func newResponses(expenses []*expense.Expense) []Response {
	out := make([]Response, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, NewResponse(e))
	}

	return out
}

type paginationResponse struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalCount      int  `json:"totalCount"`
	Limit           int  `json:"limit"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type listResponse struct {
	Expenses   []Response         `json:"expenses"`
	Pagination paginationResponse `json:"pagination"`
}

func newListResponse(page *expense.Page) listResponse {
	p := page.Pagination

	return listResponse{
		Expenses: newResponses(page.Expenses),
		Pagination: paginationResponse{
			CurrentPage:     p.CurrentPage,
			TotalPages:      p.TotalPages,
			TotalCount:      p.TotalCount,
			Limit:           p.Limit,
			HasNextPage:     p.HasNextPage,
			HasPreviousPage: p.HasPreviousPage,
		},
	}
}

type summaryResponse struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type failedRowResponse struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

type reportResponse struct {
	Summary            summaryResponse     `json:"summary"`
	SuccessfulExpenses []Response          `json:"successfulExpenses"`
	FailedRows         []failedRowResponse `json:"failedRows"`
}

func newReportResponse(report *importer.Report) reportResponse {
	failed := make([]failedRowResponse, 0, len(report.FailedRows))
	for _, f := range report.FailedRows {
		failed = append(failed, failedRowResponse{Row: f.Row, Field: f.Field, Error: f.Error})
	}

	return reportResponse{
		Summary: summaryResponse{
			Total:      report.Summary.Total,
			Successful: report.Summary.Successful,
			Failed:     report.Summary.Failed,
		},
		SuccessfulExpenses: newResponses(report.SuccessfulExpenses),
		FailedRows:         failed,
	}
}
