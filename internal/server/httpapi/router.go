package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/bailbridge/internal/server/access"
	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(bodySizeLimitMiddleware)

	r.Get("/check", s.handleCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.With(RequireOperation(access.OpViewProfile)).Get("/me", s.handleMe)
	})

	return r
}
