package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/loopital/ledger-backend/internal/api/handlers"
	custommiddleware "github.com/loopital/ledger-backend/internal/api/middleware"
	"github.com/loopital/ledger-backend/internal/config"
	"github.com/loopital/ledger-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	withdrawalService *service.WithdrawalService,
	activityService *service.ActivityService,
	refreshService *service.RefreshService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, refreshService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.With(custommiddleware.APIKeyMiddleware).Post("/refresh", systemHandler.Refresh)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/next-payout", portfolioHandler.NextPayout)
			r.Get("/schedule", portfolioHandler.Schedule)
		})

		withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
		r.Route("/projects/{projectRef}/withdrawals", func(r chi.Router) {
			r.Get("/available", withdrawalHandler.Available)
			r.Post("/", withdrawalHandler.Submit)
		})
		r.Get("/withdrawals", withdrawalHandler.List)
		r.Route("/withdrawals/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", withdrawalHandler.Request)
		})

		r.Route("/activities", func(r chi.Router) {
			activityHandler := handlers.NewActivityHandler(activityService)
			r.Get("/", activityHandler.Activities)
			r.Get("/export", activityHandler.Export)
		})
	})

	return r
}
