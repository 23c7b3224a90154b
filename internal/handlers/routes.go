package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	// Operator page (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuth)
		r.Get("/", h.handleOperatorPage)
		if h.Hub != nil {
			r.Get("/ws", h.Hub.ServeWs)
		}
	})

	// Operator API (protected)
	r.Route("/api", func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		r.Get("/categories", h.handleGetCategories)
		r.Get("/status", h.handleGetStatus)
		r.Post("/select", h.handleSelect)
		r.Post("/draw", h.handleDraw)
		r.Get("/winner", h.handleGetWinner)
		r.Get("/winner/preview", h.handleWinnerPreview)
		r.Get("/history", h.handleGetHistory)
		r.Delete("/history", h.handleClearHistory)
		r.Get("/history/summary", h.handleHistorySummary)
		r.Get("/history/{drawID}", h.handleGetHistoryEntry)

		r.Get("/qr", h.handleOperatorQR)
		r.Put("/settings/base-url", h.handleSetBaseURL)
	})

	return r
}
