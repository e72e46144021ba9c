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

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// getAllSkills retrieves all skills ordered by display_order
// @Summary Get all skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill "List of skills"
// @Router /skills [get]
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := getCachedList(cacheKeySkills, func() (interface{}, error) {
			return h.skillRepo.FindAll()
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		skills := data.([]*models.Skill)
		if skills == nil {
			skills = []*models.Skill{}
		}
		h.responder.WriteJSON(w, skills)
	}
}

// getSkill retrieves a specific skill by ID
// @Summary Get skill
// @Tags Skills
// @Produce json
// @Param skillID path string true "Skill ID" format(uuid)
// @Success 200 {object} models.Skill "Skill details"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /skills/{skillID} [get]
func (h skillHandler) getSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		skill, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if skill == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// createSkill creates a new skill
// @Summary Create skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body models.Skill true "Skill data"
// @Success 201 {object} models.Skill "Created skill"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid skill data"
// @Router /skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("skill", err))
			return
		}

		if skill.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if !models.ValidSkillCategory(skill.Category) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "unknown skill category"))
			return
		}
		if skill.Proficiency < 0 || skill.Proficiency > 100 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("proficiency", "must be between 0 and 100"))
			return
		}

		skill.ID = uuid.Nil

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		invalidateCachedList(cacheKeySkills)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill applies a partial update to an existing skill
// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skillID path string true "Skill ID" format(uuid)
// @Param skill body models.Skill true "Fields to update"
// @Success 200 {object} models.Skill "Updated skill"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /skills/{skillID} [put]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("skill", err))
			return
		}

		updates, err := skillUpdates(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if len(updates) > 0 {
			if err := h.skillRepo.Update(skillID, updates); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
				return
			}
			invalidateCachedList(cacheKeySkills)
		}

		updated, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "skill", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteSkill deletes a skill by ID
// @Summary Delete skill
// @Tags Skills
// @Produce json
// @Param skillID path string true "Skill ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /skills/{skillID} [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		if err := h.skillRepo.Delete(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}

		invalidateCachedList(cacheKeySkills)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "skill deleted successfully",
		})
	}
}

// skillUpdates filters a decoded request body down to updatable columns.
func skillUpdates(body map[string]any) (map[string]any, error) {
	updates := make(map[string]any, len(body))
	for key, value := range body {
		switch key {
		case "name", "icon":
			updates[key] = value
		case "category":
			category, ok := value.(string)
			if !ok || !models.ValidSkillCategory(category) {
				return nil, errs.NewInvalidFieldError("category", "unknown skill category")
			}
			updates[key] = category
		case "proficiency":
			proficiency, ok := toInt(value)
			if !ok || proficiency < 0 || proficiency > 100 {
				return nil, errs.NewInvalidFieldError("proficiency", "must be between 0 and 100")
			}
			updates[key] = proficiency
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
