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

type certificateHandler struct {
	responder       Responder
	logger          zerolog.Logger
	certificateRepo *database.CertificateRepo
}

func newCertificateHandler(certificateRepo *database.CertificateRepo) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		certificateRepo: certificateRepo,
	}
}

// getAllCertificates retrieves all certificates ordered by display_order
// @Summary Get all certificates
// @Tags Certificates
// @Produce json
// @Success 200 {array} models.Certificate "List of certificates"
// @Router /certificates [get]
func (h certificateHandler) getAllCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := getCachedList(cacheKeyCertificates, func() (interface{}, error) {
			return h.certificateRepo.FindAll()
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "certificates", err))
			return
		}

		certificates := data.([]*models.Certificate)
		if certificates == nil {
			certificates = []*models.Certificate{}
		}
		h.responder.WriteJSON(w, certificates)
	}
}

// getCertificate retrieves a specific certificate by ID
// @Summary Get certificate
// @Tags Certificates
// @Produce json
// @Param certificateID path string true "Certificate ID" format(uuid)
// @Success 200 {object} models.Certificate "Certificate details"
// @Failure 404 {object} ErrorResponse "Not Found - Certificate not found"
// @Router /certificates/{certificateID} [get]
func (h certificateHandler) getCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := uuid.Parse(chi.URLParam(r, "certificateID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid certificateID"))
			return
		}

		certificate, err := h.certificateRepo.FindByID(certificateID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "certificate", err))
			return
		}
		if certificate == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("certificate not found"))
			return
		}

		h.responder.WriteJSON(w, certificate)
	}
}

// createCertificate creates a new certificate
// @Summary Create certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param certificate body models.Certificate true "Certificate data"
// @Success 201 {object} models.Certificate "Created certificate"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid certificate data"
// @Router /certificates [post]
func (h certificateHandler) createCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var certificate models.Certificate
		if err := json.NewDecoder(r.Body).Decode(&certificate); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode certificate request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("certificate", err))
			return
		}

		if certificate.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if certificate.Issuer == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("issuer"))
			return
		}

		certificate.ID = uuid.Nil

		if err := h.certificateRepo.Add(&certificate); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "certificate", err))
			return
		}

		invalidateCachedList(cacheKeyCertificates)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, certificate)
	}
}

// updateCertificate applies a partial update to an existing certificate
// @Summary Update certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param certificateID path string true "Certificate ID" format(uuid)
// @Param certificate body models.Certificate true "Fields to update"
// @Success 200 {object} models.Certificate "Updated certificate"
// @Failure 404 {object} ErrorResponse "Not Found - Certificate not found"
// @Router /certificates/{certificateID} [put]
func (h certificateHandler) updateCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := uuid.Parse(chi.URLParam(r, "certificateID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid certificateID"))
			return
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode certificate request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("certificate", err))
			return
		}

		updates, err := certificateUpdates(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if len(updates) > 0 {
			if err := h.certificateRepo.Update(certificateID, updates); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "certificate", err))
				return
			}
			invalidateCachedList(cacheKeyCertificates)
		}

		updated, err := h.certificateRepo.FindByID(certificateID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "certificate", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("certificate not found"))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteCertificate deletes a certificate by ID
// @Summary Delete certificate
// @Tags Certificates
// @Produce json
// @Param certificateID path string true "Certificate ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Certificate not found"
// @Router /certificates/{certificateID} [delete]
func (h certificateHandler) deleteCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, err := uuid.Parse(chi.URLParam(r, "certificateID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid certificateID"))
			return
		}

		if err := h.certificateRepo.Delete(certificateID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "certificate", err))
			return
		}

		invalidateCachedList(cacheKeyCertificates)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "certificate deleted successfully",
		})
	}
}

// certificateUpdates filters a decoded request body down to updatable columns.
func certificateUpdates(body map[string]any) (map[string]any, error) {
	updates := make(map[string]any, len(body))
	for key, value := range body {
		switch key {
		case "title", "issuer", "issue_date", "credential_url", "image_url":
			updates[key] = value
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
