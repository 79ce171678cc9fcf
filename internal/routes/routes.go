package routes

import (
	"github.com/AnshRaj112/laporan-backend/internal/handlers"
	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// LoginPath is rate limited more strictly in production.
const LoginPath = "/api/auth/login"

func SetupRoutes(r chi.Router, h *handlers.Handler, auth middleware.Authenticator) {
	r.Get("/health", handlers.Health)

	r.Post(LoginPath, h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Get("/api/quote", h.Quote)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(auth))

		r.Get("/api/auth/me", h.Me)
		r.Put("/api/profile", h.UpdateProfile)

		r.Route("/api/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.CreateEntry)
			r.Get("/export", h.ExportEntries)
			r.Get("/{id}", h.GetEntry)
			r.Put("/{id}", h.UpdateEntry)
			r.Delete("/{id}", h.DeleteEntry)
			r.Post("/{id}/attachment", h.UploadAttachment)
			r.Delete("/{id}/attachment", h.DeleteAttachment)
		})

		r.Get("/api/dashboard", h.Dashboard)
	})
}
