package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hadetan/expense-tracking/internal/auth"
	authHandler "github.com/hadetan/expense-tracking/internal/http/auth"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
	"github.com/hadetan/expense-tracking/internal/user"
)

func newRouter(users auth.Users) http.Handler {
	svc := auth.NewService(users, auth.NewTokens("test-secret", "expense-tracking", time.Hour))
	h := authHandler.NewHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(middleware.Authenticate(svc)).Get("/me", h.Me)
	})

	return r
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

func TestHandler_LoginAndMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	stored := &user.User{ID: uuid.New(), Email: "boss@example.com", PasswordHash: hash, IsAdmin: true}

	users := auth.NewMockUsers(ctrl)
	users.EXPECT().GetByEmail(gomock.Any(), "boss@example.com").Return(stored, nil)
	users.EXPECT().Get(gomock.Any(), stored.ID).Return(stored, nil)

	router := newRouter(users)

	w := post(router, "/api/auth/login", `{"email":"boss@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID   string  `json:"id"`
			Name *string `json:"name"`
			Role string  `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, stored.ID.String(), login.User.ID)
	assert.Equal(t, "admin", login.User.Role)
	assert.Nil(t, login.User.Name)

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+login.AccessToken)

	me := httptest.NewRecorder()
	router.ServeHTTP(me, r)

	require.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"email":"boss@example.com"`)
}

func TestHandler_Login_Errors(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *auth.MockUsers)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "UnknownUser",
			body: `{"email":"ghost@example.com","password":"whatever"}`,
			setupMock: func(m *auth.MockUsers) {
				m.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, user.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Invalid email or password"}`,
		},
		{
			name:       "InvalidEmail",
			body:       `{"email":"ghost","password":"whatever"}`,
			setupMock:  func(*auth.MockUsers) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"email must be a valid email"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := auth.NewMockUsers(ctrl)
			tt.setupMock(users)

			router := newRouter(users)
			w := post(router, "/api/auth/login", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	router := newRouter(nil)

	w := post(router, "/api/auth/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, w.Body.String())
}

func TestHandler_Me_Unauthenticated(t *testing.T) {
	router := newRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
