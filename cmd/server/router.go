package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/forget/internal/api"
	apiMiddleware "github.com/phrazzld/forget/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(app.metrics.Middleware)

	workHandler := api.NewWorkHandler(app.dispatcher, app.logger)
	faultHandler := api.NewFaultHandler(app.faultReader(), app.logger)
	statsHandler := api.NewStatsHandler(app.dispatcher)

	r.Route("/api", func(r chi.Router) {
		r.Post("/work", workHandler.Submit)
		r.Post("/work/await", workHandler.SubmitAndWait)

		r.Get("/faults", faultHandler.ListFaults)
		r.Get("/faults/{id}", faultHandler.GetFault)

		r.Get("/stats", statsHandler.GetStats)
	})

	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
