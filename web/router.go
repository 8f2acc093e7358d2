package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mww/sidepools/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(30 * time.Second))

	r.NotFound(notFoundHandler(render))

	r.Get("/", rootHandler(ctrl, render))
	r.Get("/healthz", healthzHandler(render))

	r.Get("/payouts", payoutsHandler(ctrl, render))
	r.Post("/payouts", payoutsHandler(ctrl, render))
	r.Get("/payoutdetails", payoutDetailsHandler(ctrl, render))
	r.Get("/leaderboards", leaderboardsHandler(ctrl, render))

	// JSON view models for client side charting and other dashboards.
	r.Route("/views", func(r chi.Router) {
		r.Use(corsHandler(corsOrigins))

		r.Get("/payouts.json", payoutsJSONHandler(ctrl, render))
		r.Get("/payoutdetails.json", payoutDetailsJSONHandler(ctrl, render))
		r.Get("/leaderboards.json", leaderboardsJSONHandler(ctrl, render))
	})

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
