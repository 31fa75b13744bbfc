// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package api

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/netsight/internal/config"
	"github.com/tomtom215/netsight/internal/middleware"
)

// defaultRequestTimeout bounds API handlers when server.timeout is unset.
const defaultRequestTimeout = 30 * time.Second

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	staticDir      string
	requestTimeout time.Duration
}

// NewRouter creates a router for handler. cfg may be nil in tests.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	router := &Router{
		handler:        handler,
		chiMiddleware:  NewChiMiddleware(nil),
		requestTimeout: defaultRequestTimeout,
	}
	if cfg != nil {
		router.chiMiddleware = NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security))
		router.staticDir = cfg.Server.StaticDir
		if cfg.Server.Timeout > 0 {
			router.requestTimeout = cfg.Server.Timeout
		}
	}
	return router
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(middleware.SecurityHeaders)
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// WebSocket
	// ========================
	// Registered outside the API group: upgrades must not be compressed or
	// bound by the request timeout.
	r.With(
		router.chiMiddleware.RateLimitWebSocket(),
		middleware.PrometheusMetrics,
	).Get("/api/ws", router.handler.WebSocket)

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Use(chimiddleware.Timeout(router.requestTimeout))

		r.Get("/captures", router.handler.Captures)
		r.Get("/captures/{id}", router.handler.Capture)
		r.Get("/devices", router.handler.Devices)
		r.Get("/traffic", router.handler.Traffic)
		r.Get("/graph", router.handler.Graph)
		r.Get("/stats", router.handler.Stats)

		r.With(router.chiMiddleware.RateLimitImport()).Post("/import", router.handler.Import)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Static Files & SPA
	// ========================
	// Must be last - catches all unmatched routes
	if router.staticDir != "" {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Compression)
			r.Get("/*", router.serveStaticOrIndex)
		})
	}

	return r
}

// serveStaticOrIndex serves files from the static directory and falls back to
// index.html so client-side routes resolve.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)

	switch {
	case strings.HasSuffix(urlPath, ".js") || strings.HasSuffix(urlPath, ".css"):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	case strings.HasSuffix(urlPath, ".png") || strings.HasSuffix(urlPath, ".svg") || strings.HasSuffix(urlPath, ".ico"):
		w.Header().Set("Cache-Control", "public, max-age=604800")
	default:
		w.Header().Set("Cache-Control", "public, max-age=300")
	}

	if urlPath != "/" && router.fileExists(urlPath) {
		http.FileServer(http.Dir(router.staticDir)).ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(router.staticDir, "index.html"))
}

// fileExists reports whether urlPath names a regular file in the static directory.
func (router *Router) fileExists(urlPath string) bool {
	f, err := http.Dir(router.staticDir).Open(urlPath)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
