package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceHandler struct {
	responder      Responder
	logger         zerolog.Logger
	experienceRepo *database.ExperienceRepo
}

func newExperienceHandler(experienceRepo *database.ExperienceRepo) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		experienceRepo: experienceRepo,
	}
}

// getAllExperiences retrieves all experience entries ordered by display_order
// @Summary Get all experiences
// @Tags Experiences
// @Produce json
// @Success 200 {array} models.Experience "List of experience entries"
// @Router /experiences [get]
func (h experienceHandler) getAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := getCachedList(cacheKeyExperiences, func() (interface{}, error) {
			return h.experienceRepo.FindAll()
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}

		experiences := data.([]*models.Experience)
		if experiences == nil {
			experiences = []*models.Experience{}
		}
		h.responder.WriteJSON(w, experiences)
	}
}

// getExperience retrieves a specific experience entry by ID
// @Summary Get experience
// @Tags Experiences
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} models.Experience "Experience details"
// @Failure 404 {object} ErrorResponse "Not Found - Experience not found"
// @Router /experiences/{experienceID} [get]
func (h experienceHandler) getExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := uuid.Parse(chi.URLParam(r, "experienceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid experienceID"))
			return
		}

		experience, err := h.experienceRepo.FindByID(experienceID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}
		if experience == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("experience not found"))
			return
		}

		h.responder.WriteJSON(w, experience)
	}
}

// createExperience creates a new experience entry
// @Summary Create experience
// @Tags Experiences
// @Accept json
// @Produce json
// @Param experience body models.Experience true "Experience data"
// @Success 201 {object} models.Experience "Created experience"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid experience data"
// @Router /experiences [post]
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var experience models.Experience
		if err := json.NewDecoder(r.Body).Decode(&experience); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode experience request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("experience", err))
			return
		}

		if experience.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if experience.Company == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("company"))
			return
		}
		if experience.Period == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("period"))
			return
		}
		if experience.ExperienceType == "" {
			experience.ExperienceType = models.ExperienceTypeJob
		}
		if !models.ValidExperienceType(experience.ExperienceType) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("experience_type", "unknown experience type"))
			return
		}

		experience.ID = uuid.Nil

		if err := h.experienceRepo.Add(&experience); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "experience", err))
			return
		}

		invalidateCachedList(cacheKeyExperiences)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, experience)
	}
}

// updateExperience applies a partial update to an existing experience entry
// @Summary Update experience
// @Tags Experiences
// @Accept json
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Param experience body models.Experience true "Fields to update"
// @Success 200 {object} models.Experience "Updated experience"
// @Failure 404 {object} ErrorResponse "Not Found - Experience not found"
// @Router /experiences/{experienceID} [put]
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := uuid.Parse(chi.URLParam(r, "experienceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid experienceID"))
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode experience request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("experience", err))
			return
		}

		updates, err := experienceUpdates(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if len(updates) > 0 {
			if err := h.experienceRepo.Update(experienceID, updates); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "experience", err))
				return
			}
			invalidateCachedList(cacheKeyExperiences)
		}

		updated, err := h.experienceRepo.FindByID(experienceID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "experience", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("experience not found"))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteExperience deletes an experience entry by ID
// @Summary Delete experience
// @Tags Experiences
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Experience not found"
// @Router /experiences/{experienceID} [delete]
func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := uuid.Parse(chi.URLParam(r, "experienceID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid experienceID"))
			return
		}

		if err := h.experienceRepo.Delete(experienceID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "experience", err))
			return
		}

		invalidateCachedList(cacheKeyExperiences)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "experience deleted successfully",
		})
	}
}

// experienceUpdates filters a decoded request body down to updatable columns.
func experienceUpdates(body map[string]any) (map[string]any, error) {
	updates := make(map[string]any, len(body))
	for key, value := range body {
		switch key {
		case "title", "company", "location", "period", "is_current":
			updates[key] = value
		case "experience_type":
			experienceType, ok := value.(string)
			if !ok || !models.ValidExperienceType(experienceType) {
				return nil, errs.NewInvalidFieldError("experience_type", "unknown experience type")
			}
			updates[key] = experienceType
		case "description":
			list, ok := toStringSlice(value)
			if !ok {
				return nil, errs.NewInvalidFieldError("description", "must be a list of strings")
			}
			updates[key] = list
		case "technologies":
			list, ok := toStringSlice(value)
			if !ok {
				return nil, errs.NewInvalidFieldError("technologies", "must be a list of strings")
			}
			updates[key] = list
		case "display_order":
			order, ok := toInt(value)
			if !ok {
				return nil, errs.NewInvalidFieldError("display_order", "must be an integer")
			}
			updates[key] = order
		}
	}
	return updates, nil
}
