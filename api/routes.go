package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public surface and the admin surface. Admin-gated
// routes are enforced here at the collaborator boundary; hiding admin controls
// in the UI is a convenience, not the security boundary.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())

		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Get("/skills/{skillID}", handlers.skillHandler.getSkill())

		r.Get("/experiences", handlers.experienceHandler.getAllExperiences())
		r.Get("/experiences/{experienceID}", handlers.experienceHandler.getExperience())

		r.Get("/certificates", handlers.certificateHandler.getAllCertificates())
		r.Get("/certificates/{certificateID}", handlers.certificateHandler.getCertificate())

		r.Get("/profile", handlers.settingsHandler.getProfile())
		r.Get("/resume", handlers.settingsHandler.getResume())

		r.Post("/contact", handlers.contactHandler.createSubmission())

		r.Post("/chat", handlers.chatHandler.streamChat())

		r.Post("/auth/login", handlers.authHandler.login())
		r.Get("/auth/verify", handlers.authHandler.verify())
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireAdmin)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/skills", handlers.skillHandler.createSkill())
		r.Put("/skills/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/skills/{skillID}", handlers.skillHandler.deleteSkill())

		r.Post("/experiences", handlers.experienceHandler.createExperience())
		r.Put("/experiences/{experienceID}", handlers.experienceHandler.updateExperience())
		r.Delete("/experiences/{experienceID}", handlers.experienceHandler.deleteExperience())

		r.Post("/certificates", handlers.certificateHandler.createCertificate())
		r.Put("/certificates/{certificateID}", handlers.certificateHandler.updateCertificate())
		r.Delete("/certificates/{certificateID}", handlers.certificateHandler.deleteCertificate())

		r.Put("/profile", handlers.settingsHandler.updateProfile())
		r.Put("/resume", handlers.settingsHandler.updateResume())

		r.Get("/notification-settings", handlers.settingsHandler.getNotificationSettings())
		r.Put("/notification-settings", handlers.settingsHandler.updateNotificationSettings())

		r.Get("/contact", handlers.contactHandler.getAllSubmissions())
		r.Put("/contact/{submissionID}/read", handlers.contactHandler.markSubmissionRead())
		r.Delete("/contact/{submissionID}", handlers.contactHandler.deleteSubmission())

		r.Post("/upload", handlers.uploadHandler.upload())
	})
}
