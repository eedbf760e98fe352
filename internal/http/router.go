package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3"

	"github.com/hadetan/expense-tracking/internal/http/analytics"
	"github.com/hadetan/expense-tracking/internal/http/api"
	"github.com/hadetan/expense-tracking/internal/http/auth"
	"github.com/hadetan/expense-tracking/internal/http/category"
	"github.com/hadetan/expense-tracking/internal/http/expense"
	"github.com/hadetan/expense-tracking/internal/http/export"
	"github.com/hadetan/expense-tracking/internal/http/middleware"
)

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Authenticator  middleware.Authenticator
	LoginLimiter   *limiter.Limiter
}

func New(
	opts Options,
	authV1 *auth.Handler,
	categoriesV1 *category.Handler,
	expensesV1 *expense.Handler,
	exportV1 *export.Handler,
	analyticsV1 *analytics.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authenticate := middleware.Authenticate(opts.Authenticator)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(opts.LoginLimiter)).Post("/login", authV1.Login)
			r.Post("/logout", authV1.Logout)
			r.With(authenticate).Get("/me", authV1.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/categories", categoriesV1.Routes)

			r.Route("/expenses", func(r chi.Router) {
				exportV1.Routes(r)
				expensesV1.Routes(r)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				analyticsV1.Routes(r)
			})
		})
	})

	return router
}
