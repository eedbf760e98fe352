package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/http/api"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
	"github.com/hadetan/expense-tracking/internal/user"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, newUserResponse(middleware.CurrentUser(r.Context())))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name"`
	Role  user.Role `json:"role"`
}

func newUserResponse(u *user.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role()}
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := api.Bind(r, &req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			middleware.Logger(r.Context()).Warn("failed login attempt", "email", req.Email)
			api.Error(w, http.StatusUnauthorized, "Invalid email or password")

			return
		}

		middleware.Logger(r.Context()).Error("failed to log in", "error", err)
		api.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	api.JSON(w, http.StatusOK, loginResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
		User:        newUserResponse(session.User),
	})
}

// Logout only acknowledges the request. Tokens are stateless and the client discards its copy.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	api.JSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
