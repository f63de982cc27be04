// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tastematch/tastematch/internal/config"
)

// Router builds the HTTP handler tree.
type Router struct {
	handler *Handler
	cfg     config.APIConfig
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler, cfg config.APIConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup wires all routes and middleware.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(RequestLogging())

	// Health endpoints: permissive rate limit so probes are never starved.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, router.cfg.RateLimitWindow))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(router.cfg.RateLimitReqs, router.cfg.RateLimitWindow))
		r.Use(PrometheusMetrics())

		r.Get("/recommendations", router.handler.Recommendations)
		r.Get("/recommendations/cf/{userID}", router.handler.RecommendationsCF)

		r.Get("/restaurants", router.handler.Restaurants)
		r.Get("/restaurants/top", router.handler.RestaurantsTop)
		r.Get("/restaurants/{id}", router.handler.RestaurantByID)
		r.Get("/restaurants/{id}/similar", router.handler.RestaurantSimilar)
		r.Get("/restaurants/{id}/comments", router.handler.CommentsList)
		r.Post("/restaurants/{id}/comments", router.handler.AddComment)

		r.Get("/preferences", router.handler.GetPreferences)
		r.Put("/preferences", router.handler.UpdatePreferences)
		r.Post("/preferences/viewed/{id}", router.handler.MarkViewed)
		r.Post("/preferences/liked/{id}", router.handler.MarkLiked)

		r.Post("/admin/train", router.handler.AdminTrain)
		r.Get("/admin/train/status", router.handler.TrainStatus)
	})

	// Prometheus scrape endpoint, outside the API rate limit.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
