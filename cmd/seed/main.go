// Command seed creates the demo admin, employees and their categories. Running it again only
// adds what is missing.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/category"
	categoryStore "github.com/hadetan/expense-tracking/internal/category/store"
	"github.com/hadetan/expense-tracking/internal/config"
	"github.com/hadetan/expense-tracking/internal/database"
	"github.com/hadetan/expense-tracking/internal/user"
	userStore "github.com/hadetan/expense-tracking/internal/user/store"
)

type seeder struct {
	users      *user.Service
	auth       *auth.Service
	categories *category.Service
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := user.NewService(userStore.New(db))
	s := &seeder{
		users:      users,
		auth:       auth.NewService(users, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)),
		categories: category.NewService(categoryStore.New(db)),
	}

	ctx := context.Background()

	if _, err := s.ensureUser(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, true); err != nil {
		slog.Error("failed to seed admin", "email", cfg.Seed.AdminEmail, "error", err)
		os.Exit(1)
	}

	for _, email := range cfg.Seed.EmployeeEmails {
		u, err := s.ensureUser(ctx, email, cfg.Seed.EmployeePassword, false)
		if err != nil {
			slog.Error("failed to seed employee", "email", email, "error", err)
			os.Exit(1)
		}

		if err := s.ensureCategories(ctx, u, cfg.Seed.Categories); err != nil {
			slog.Error("failed to seed categories", "email", email, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("seed complete")
}

func (s *seeder) ensureUser(ctx context.Context, email, password string, isAdmin bool) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		slog.Info("user exists", "email", u.Email)
		return u, nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	u, err = s.auth.Register(ctx, auth.RegisterParams{
		Email:    email,
		Name:     displayName(email),
		Password: password,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user created", "email", u.Email, "role", u.Role())

	return u, nil
}

func (s *seeder) ensureCategories(ctx context.Context, u *user.User, names []string) error {
	for _, name := range names {
		_, err := s.categories.Create(ctx, u.ID, name)
		switch {
		case err == nil:
			slog.Info("category created", "email", u.Email, "category", name)
		case errors.Is(err, category.ErrDuplicate):
		default:
			return err
		}
	}

	return nil
}

// displayName turns "jane.doe@example.com" into "Jane Doe".
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})

	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}

	return strings.Join(parts, " ")
}
