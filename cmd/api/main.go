package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/hadetan/expense-tracking/internal/analytics"
	analyticsStore "github.com/hadetan/expense-tracking/internal/analytics/store"
	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/category"
	categoryStore "github.com/hadetan/expense-tracking/internal/category/store"
	"github.com/hadetan/expense-tracking/internal/config"
	"github.com/hadetan/expense-tracking/internal/database"
	"github.com/hadetan/expense-tracking/internal/expense"
	expenseStore "github.com/hadetan/expense-tracking/internal/expense/store"
	"github.com/hadetan/expense-tracking/internal/export"
	appHttp "github.com/hadetan/expense-tracking/internal/http"
	analyticsHandler "github.com/hadetan/expense-tracking/internal/http/analytics"
	authHandler "github.com/hadetan/expense-tracking/internal/http/auth"
	categoryHandler "github.com/hadetan/expense-tracking/internal/http/category"
	expenseHandler "github.com/hadetan/expense-tracking/internal/http/expense"
	exportHandler "github.com/hadetan/expense-tracking/internal/http/export"
	"github.com/hadetan/expense-tracking/internal/importer"
	"github.com/hadetan/expense-tracking/internal/user"
	userStore "github.com/hadetan/expense-tracking/internal/user/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

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

	loginRate, err := limiter.NewRateFromFormatted(cfg.RateLimit.Login)
	if err != nil {
		slog.Error("invalid login rate limit", "rate", cfg.RateLimit.Login, "error", err)
		os.Exit(1)
	}

	var (
		userService      = user.NewService(userStore.New(db))
		authService      = auth.NewService(userService, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL))
		categoryService  = category.NewService(categoryStore.New(db))
		expenseService   = expense.NewService(expenseStore.New(db), categoryService)
		importService    = importer.NewService(categoryService, expenseService)
		exportService    = export.NewService(expenseService)
		analyticsService = analytics.NewService(analyticsStore.New(db))
	)

	var (
		authH      = authHandler.NewHandler(authService)
		categoryH  = categoryHandler.NewHandler(categoryService)
		expenseH   = expenseHandler.NewHandler(expenseService, importService, cfg.Upload.MaxBytes)
		exportH    = exportHandler.NewHandler(exportService)
		analyticsH = analyticsHandler.NewHandler(analyticsService)
	)

	router := appHttp.New(appHttp.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Authenticator:  authService,
		LoginLimiter:   limiter.New(memory.NewStore(), loginRate),
	}, authH, categoryH, expenseH, exportH, analyticsH)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	slog.Info("starting server", "port", server.Addr, "env", cfg.App.Env)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
