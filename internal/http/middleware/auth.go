package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/expense"
	"github.com/hadetan/expense-tracking/internal/http/api"
	"github.com/hadetan/expense-tracking/internal/user"
)

const userKey = contextKey("user")

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// Authenticate rejects requests without a valid bearer token and stores the resolved user
// in the request context.
func Authenticate(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := Logger(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				api.Error(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				api.Error(w, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			u, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					api.Error(w, http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, auth.ErrInvalidToken):
					logger.Warn("invalid token", "error", err)
					api.Error(w, http.StatusUnauthorized, "Invalid token")
				default:
					logger.Error("failed to authenticate request", "error", err)
					api.Error(w, http.StatusInternalServerError, "Internal server error")
				}

				return
			}

			ctx := context.WithValue(r.Context(), userKey, u)
			ctx = WithLogger(ctx, logger.With(slog.String("user_id", u.ID.String())))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must be mounted behind Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := CurrentUser(r.Context())
		if u == nil || !u.IsAdmin {
			api.Error(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user, or nil on routes not behind Authenticate.
func CurrentUser(ctx context.Context) *user.User {
	u, _ := ctx.Value(userKey).(*user.User)
	return u
}

// Actor is the authenticated user as seen by the expense service.
func Actor(ctx context.Context) expense.Actor {
	u := CurrentUser(ctx)
	if u == nil {
		return expense.Actor{}
	}

	return expense.Actor{UserID: u.ID, IsAdmin: u.IsAdmin}
}
