package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRecover)
	router.Use(h.withCORS)
	router.Use(h.withMetrics)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	// promhttp negotiates its own compression
	router.Handle("/metrics", h.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/health", h.health)
		r.Get("/version", h.version)

		r.Route("/auth", func(r chi.Router) {
			// routes without authorization
			r.Group(func(r chi.Router) {
				r.Use(h.withRateLimit)
				r.Post("/signup", h.signUp)
				r.Post("/signin", h.signIn)
				r.Post("/forgot-password", h.forgotPassword)
				r.Put("/reset-password/{resetToken}", h.resetPassword)
			})

			r.With(h.auth).Get("/me", h.me)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/", h.listTodos)
			r.Post("/", h.createTodo)
			r.Get("/{id}", h.getTodo)
			r.Put("/{id}", h.updateTodo)
			r.Delete("/{id}", h.deleteTodo)
			r.Patch("/{id}/toggle", h.toggleTodo)
		})
	})

	return router
}
