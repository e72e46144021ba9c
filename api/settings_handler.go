package api

import (
	"encoding/json"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type settingsHandler struct {
	responder                Responder
	logger                   zerolog.Logger
	profileSettingsRepo      *database.ProfileSettingsRepo
	resumeSettingsRepo       *database.ResumeSettingsRepo
	notificationSettingsRepo *database.NotificationSettingsRepo
}

func newSettingsHandler(
	profileSettingsRepo *database.ProfileSettingsRepo,
	resumeSettingsRepo *database.ResumeSettingsRepo,
	notificationSettingsRepo *database.NotificationSettingsRepo,
) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:                NewResponder(logger),
		logger:                   logger,
		profileSettingsRepo:      profileSettingsRepo,
		resumeSettingsRepo:       resumeSettingsRepo,
		notificationSettingsRepo: notificationSettingsRepo,
	}
}

// getProfile returns the profile settings row, or null when none exists yet.
// Callers treat null as "use hard-coded defaults".
// @Summary Get profile settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.ProfileSettings "Profile settings, or null"
// @Router /profile [get]
func (h settingsHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.profileSettingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// updateProfile applies a partial update to the profile settings singleton,
// creating the row on first write.
// @Summary Update profile settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.ProfileSettings true "Fields to update"
// @Success 200 {object} models.ProfileSettings "Updated profile settings"
// @Router /profile [put]
func (h settingsHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile settings request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("profile settings", err))
			return
		}

		updates := make(map[string]any, len(body))
		for key, value := range body {
			switch key {
			case "hero_title", "hero_subtitle", "about_text", "footer_text",
				"github_url", "linkedin_url", "twitter_url", "contact_email",
				"stat_projects", "stat_years", "stat_clients",
				"avatar_url", "background_url", "about_image_url":
				updates[key] = value
			case "career_goals":
				list, ok := toStringSlice(value)
				if !ok {
					h.responder.WriteError(w, errs.NewInvalidFieldError("career_goals", "must be a list of strings"))
					return
				}
				updates[key] = list
			}
		}

		settings, err := h.profileSettingsRepo.Upsert(updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upsert", "profile settings", err))
			return
		}

		h.responder.WriteJSON(w, settings)
	}
}

// getResume returns the resume settings row, or null when none exists yet
// @Summary Get resume settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.ResumeSettings "Resume settings, or null"
// @Router /resume [get]
func (h settingsHandler) getResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.resumeSettingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// updateResume applies a partial update to the resume settings singleton
// @Summary Update resume settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.ResumeSettings true "Fields to update"
// @Success 200 {object} models.ResumeSettings "Updated resume settings"
// @Router /resume [put]
func (h settingsHandler) updateResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode resume settings request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("resume settings", err))
			return
		}

		updates := make(map[string]any, len(body))
		for key, value := range body {
			switch key {
			case "file_url", "file_name":
				updates[key] = value
			}
		}

		settings, err := h.resumeSettingsRepo.Upsert(updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upsert", "resume settings", err))
			return
		}

		h.responder.WriteJSON(w, settings)
	}
}

// getNotificationSettings returns the notification settings row, or null when
// none exists yet. Admin only: the row holds the routing email address.
// @Summary Get notification settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.NotificationSettings "Notification settings, or null"
// @Router /notification-settings [get]
func (h settingsHandler) getNotificationSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.notificationSettingsRepo.Get()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "notification settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// updateNotificationSettings applies a partial update to the notification settings singleton
// @Summary Update notification settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.NotificationSettings true "Fields to update"
// @Success 200 {object} models.NotificationSettings "Updated notification settings"
// @Router /notification-settings [put]
func (h settingsHandler) updateNotificationSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode notification settings request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("notification settings", err))
			return
		}

		updates := make(map[string]any, len(body))
		for key, value := range body {
			switch key {
			case "notification_email", "send_confirmation_email":
				updates[key] = value
			}
		}

		settings, err := h.notificationSettingsRepo.Upsert(updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upsert", "notification settings", err))
			return
		}

		h.responder.WriteJSON(w, settings)
	}
}
