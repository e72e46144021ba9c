package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

type contactHandler struct {
	responder                Responder
	logger                   zerolog.Logger
	validate                 *validator.Validate
	contactSubmissionRepo    *database.ContactSubmissionRepo
	notificationSettingsRepo *database.NotificationSettingsRepo
}

func newContactHandler(
	contactSubmissionRepo *database.ContactSubmissionRepo,
	notificationSettingsRepo *database.NotificationSettingsRepo,
) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:                NewResponder(logger),
		logger:                   logger,
		validate:                 validator.New(),
		contactSubmissionRepo:    contactSubmissionRepo,
		notificationSettingsRepo: notificationSettingsRepo,
	}
}

// createSubmission stores a contact-form submission. Public: no credential
// required. Email notification is dispatched after the row is stored and its
// failure never rolls the submission back.
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body ContactRequest true "Contact form data"
// @Success 201 {object} models.ContactSubmission "Stored submission"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid submission"
// @Router /contact [post]
func (h contactHandler) createSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("contact submission", err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.TrimSpace(req.Email)
		req.Subject = strings.TrimSpace(req.Subject)
		req.Message = strings.TrimSpace(req.Message)

		if err := h.validate.Struct(req); err != nil {
			var validationErrors validator.ValidationErrors
			if stderrors.As(err, &validationErrors) && len(validationErrors) > 0 {
				field := strings.ToLower(validationErrors[0].Field())
				h.responder.WriteError(w, errs.NewInvalidFieldError(field, validationErrors[0].Tag()))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contact submission"))
			return
		}

		submission := models.ContactSubmission{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		}

		if err := h.contactSubmissionRepo.Add(&submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact submission", err))
			return
		}

		// Notification dispatch is independent of persistence: failures are
		// logged inside the service, never surfaced to the submitter.
		settings, err := h.notificationSettingsRepo.Get()
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to load notification settings, skipping emails")
		} else {
			go services.DispatchContactEmails(settings, &submission)
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, submission)
	}
}

// getAllSubmissions lists submissions newest-first with the unread count. Admin only.
// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Success 200 {object} map[string]interface{} "Submissions and unread count"
// @Router /contact [get]
func (h contactHandler) getAllSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := h.contactSubmissionRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact submissions", err))
			return
		}
		if submissions == nil {
			submissions = []*models.ContactSubmission{}
		}

		unread, err := h.contactSubmissionRepo.CountUnread()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count unread", "contact submissions", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"submissions":  submissions,
			"unread_count": unread,
		})
	}
}

// markSubmissionRead flags a submission as read. Admin only.
// @Summary Mark contact submission as read
// @Tags Contact
// @Produce json
// @Param submissionID path string true "Submission ID" format(uuid)
// @Success 200 {object} models.ContactSubmission "Updated submission"
// @Failure 404 {object} ErrorResponse "Not Found - Submission not found"
// @Router /contact/{submissionID}/read [put]
func (h contactHandler) markSubmissionRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid submissionID"))
			return
		}

		if err := h.contactSubmissionRepo.MarkRead(submissionID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("mark read", "contact submission", err))
			return
		}

		updated, err := h.contactSubmissionRepo.FindByID(submissionID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "contact submission", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteSubmission removes a submission. Admin only.
// @Summary Delete contact submission
// @Tags Contact
// @Produce json
// @Param submissionID path string true "Submission ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Submission not found"
// @Router /contact/{submissionID} [delete]
func (h contactHandler) deleteSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid submissionID"))
			return
		}

		if err := h.contactSubmissionRepo.Delete(submissionID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "contact submission", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "contact submission deleted successfully",
		})
	}
}
