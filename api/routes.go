package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPublicRoutes registers the routes the portfolio site calls without a session
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/projects", handlers.projectHandler.getAllProjects())
	r.Get("/projects/{projectID}", handlers.projectHandler.getProject())

	r.Post("/feedback", handlers.feedbackHandler.createFeedback())

	r.Get("/admin-details", handlers.adminDetailsHandler.getAdminDetails())
	r.Get("/admin-email", handlers.adminAuthHandler.getAdminEmail())

	r.Post("/admin-login", handlers.adminAuthHandler.login())
	r.Post("/verify-admin-login", handlers.adminAuthHandler.verifyLogin())
}

// setupAdminRoutes registers the routes that require an admin session token
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireAdmin)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Get("/feedback", handlers.feedbackHandler.getAllFeedback())
		r.Delete("/feedback/{feedbackID}", handlers.feedbackHandler.deleteFeedback())

		r.Put("/admin-details", handlers.adminDetailsHandler.updateAdminDetails())

		r.Post("/send-update-verification", handlers.adminAuthHandler.sendUpdateVerification())
		r.Post("/update-admin-credentials", handlers.adminAuthHandler.updateCredentials())
		r.Get("/admin-credentials", handlers.adminAuthHandler.getAdminCredentials())
	})
}

// setupOperationalRoutes registers health probes and the metrics endpoint
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.liveness())
	r.Get("/readyz", handlers.healthHandler.readiness())
	r.Handle("/metrics", promhttp.Handler())
}
