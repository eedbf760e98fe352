package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
	"github.com/hadetan/expense-tracking/internal/user"
)

type authenticatorFunc func(ctx context.Context, token string) (*user.User, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (*user.User, error) {
	return f(ctx, token)
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAuthenticate(t *testing.T) {
	employee := &user.User{ID: uuid.New(), Email: "jane@example.com"}

	authenticator := authenticatorFunc(func(_ context.Context, token string) (*user.User, error) {
		switch token {
		case "good":
			return employee, nil
		case "expired":
			return nil, auth.ErrTokenExpired
		case "broken":
			return nil, errors.New("db down")
		}

		return nil, auth.ErrInvalidToken
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "Valid", header: "Bearer good", wantStatus: http.StatusNoContent},
		{name: "LowercaseScheme", header: "bearer good", wantStatus: http.StatusNoContent},
		{name: "Missing", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "WrongScheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "Authorization header format must be Bearer {token}"},
		{name: "Expired", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantError: "Token has expired"},
		{name: "Invalid", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "Backend", header: "Bearer broken", wantStatus: http.StatusInternalServerError, wantError: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *user.User

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.CurrentUser(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			r := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			middleware.Authenticate(authenticator)(next).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
				assert.Nil(t, seen)

				return
			}

			assert.Equal(t, employee, seen)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       *user.User
		wantStatus int
	}{
		{name: "Admin", user: &user.User{ID: uuid.New(), IsAdmin: true}, wantStatus: http.StatusNoContent},
		{name: "Employee", user: &user.User{ID: uuid.New()}, wantStatus: http.StatusForbidden},
		{name: "Anonymous", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authenticator := authenticatorFunc(func(context.Context, string) (*user.User, error) {
				return tt.user, nil
			})

			handler := middleware.RequireAdmin(ok)
			if tt.user != nil {
				handler = middleware.Authenticate(authenticator)(handler)
			}

			r := httptest.NewRequest(http.MethodGet, "/api/analytics/summary", nil)
			r.Header.Set("Authorization", "Bearer token")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestActor(t *testing.T) {
	assert.Zero(t, middleware.Actor(context.Background()))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var inner *slog.Logger

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = middleware.Logger(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	handler := chimw.RequestID(middleware.RequestLogger(base)(next))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotNil(t, inner)
	assert.NotSame(t, slog.Default(), inner)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "request completed", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestLogger_Default(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.Logger(context.Background()))
}

func TestRateLimit(t *testing.T) {
	l := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 2})
	handler := middleware.RateLimit(l)(ok)

	send := func(addr string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = addr

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		return w
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1234").Code)

	second := send("10.0.0.1:1234")
	assert.Equal(t, http.StatusNoContent, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := send("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.JSONEq(t, `{"error":"Too many requests. Please try again later."}`, third.Body.String())

	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:1234").Code)
}
