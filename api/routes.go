package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes sets up the unauthenticated site API
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/home", handlers.public.getHome())
		r.Get("/projects/{id}", handlers.public.getProject())
		r.Post("/contact", handlers.public.submitContact())
		for _, h := range handlers.resources {
			r.Get("/"+h.name, h.listPublic)
		}
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", handlers.auth.login())
		r.Post("/logout", handlers.auth.logout())
	})

	r.Get("/healthz", handlers.maintenance.healthz())
}

// setupAdminRoutes sets up all routes that need an admin session
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/me", handlers.auth.me())

		for _, h := range handlers.resources {
			r.Get("/"+h.name, h.listAdmin)
			r.Post("/"+h.name, h.create)
			r.Get("/"+h.name+"/{id}", h.get)
			r.Put("/"+h.name+"/{id}", h.update)
			r.Delete("/"+h.name+"/{id}", h.delete)
		}

		// Project gallery endpoints
		r.Get("/projects/{id}/images", handlers.gallery.list())
		r.Post("/projects/{id}/images", handlers.gallery.upload())
		r.Put("/projects/{id}/images/order", handlers.gallery.reorder())
		r.Put("/project-images/{imageID}", handlers.gallery.updateCaption())
		r.Delete("/project-images/{imageID}", handlers.gallery.delete())

		r.Post("/maintenance/orphans", handlers.maintenance.sweepOrphans())
	})
}

// mountAdminUI serves the server-rendered admin screens when configured.
func mountAdminUI(r chi.Router, ui http.Handler) {
	if ui == nil {
		return
	}
	r.Mount("/admin", ui)
}
