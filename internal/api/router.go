// Reelgraph - Social Network for Movies and TV Tracking
// Copyright 2026 Reelgraph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelgraph/reelgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelgraph/reelgraph/internal/auth"
	"github.com/reelgraph/reelgraph/internal/config"
	"github.com/reelgraph/reelgraph/internal/middleware"
)

// NewRouter builds the chi router. The short follow-lifecycle routes are
// mounted at the root and mirrored under /api/v1/social for API clients; both
// share handlers.
func NewRouter(cfg *config.Config, h *Handlers, authMW *auth.Middleware) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimw.Timeout(cfg.Server.Timeout))

	if len(cfg.Security.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Security.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if !cfg.Security.RateLimitDisabled {
		r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
	}

	r.Handle("/metrics", promhttp.Handler())

	// Follow-lifecycle routes at the root.
	r.Group(func(r chi.Router) {
		r.Use(authMW.Authenticate)
		mountSocial(r, h)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Credential endpoints get their own, stricter per-IP limit.
		r.Group(func(r chi.Router) {
			if !cfg.Security.RateLimitDisabled {
				r.Use(httprate.LimitByIP(loginRateReqs(cfg), loginRateWindow(cfg)))
			}
			r.Post("/auth/login", h.Login)
			r.Post("/auth/claim", h.Claim)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Route("/social", func(r chi.Router) {
				mountSocial(r, h)
			})

			r.Get("/users/{userID}", h.GetProfile)
			r.Get("/users/{userID}/followers", h.ListFollowers)
			r.Get("/users/{userID}/following", h.ListFollowing)

			r.Get("/notifications", h.ListNotifications)
			r.Post("/notifications/read", h.MarkNotificationsRead)

			r.Get("/media/search", h.SearchMedia)

			r.Post("/posts", h.CreatePost)
			r.Get("/posts", h.ListFeed)
			r.Post("/posts/{postID}/like", h.LikePost)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	return r
}

// mountSocial attaches the follow-lifecycle routes to an already
// authenticated router group.
func mountSocial(r chi.Router, h *Handlers) {
	r.Post("/follow/{receiverID}", h.SendFollowRequest)
	r.Get("/requests", h.ListIncomingRequests)
	r.Post("/accept/{requestID}", h.AcceptRequest)
	r.Post("/reject/{requestID}", h.RejectRequest)
}

func loginRateReqs(cfg *config.Config) int {
	if cfg.Security.LoginRateLimitReqs > 0 {
		return cfg.Security.LoginRateLimitReqs
	}
	return 10
}

func loginRateWindow(cfg *config.Config) time.Duration {
	if cfg.Security.LoginRateLimitWindow > 0 {
		return cfg.Security.LoginRateLimitWindow
	}
	return time.Minute
}
