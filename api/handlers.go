package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
)

// handlerConfig carries the collaborators and credentials the handlers need
// beyond the database itself.
type handlerConfig struct {
	resolver    IdentityResolver
	secret      []byte
	tokenTTL    time.Duration
	model       ChatModel
	store       ObjectStore
	bucket      string
	region      string
	clientKey   string
	startupTime time.Time
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, cfg handlerConfig) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(database.ProjectRepo()),
		skillHandler:       newSkillHandler(database.SkillRepo()),
		experienceHandler:  newExperienceHandler(database.ExperienceRepo()),
		certificateHandler: newCertificateHandler(database.CertificateRepo()),
		settingsHandler: newSettingsHandler(
			database.ProfileSettingsRepo(),
			database.ResumeSettingsRepo(),
			database.NotificationSettingsRepo(),
		),
		contactHandler: newContactHandler(
			database.ContactSubmissionRepo(),
			database.NotificationSettingsRepo(),
		),
		authHandler:   newAuthHandler(database.UserRepo(), cfg.resolver, cfg.secret, cfg.tokenTTL),
		chatHandler:   newChatHandler(cfg.model, cfg.clientKey),
		uploadHandler: newUploadHandler(cfg.store, cfg.bucket, cfg.region),
		healthHandler: newHealthHandler(cfg.startupTime),
	}
}
