package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 10 << 20 // 10MB

// ObjectStore is the subset of the S3 client the upload handler needs.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     ObjectStore
	bucket    string
	region    string
}

func newUploadHandler(store ObjectStore, bucket, region string) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		bucket:    bucket,
		region:    region,
	}
}

// upload stores a multipart file (avatar, hero background, resume, ...) in the
// object store and returns its public URL. Admin only.
// @Summary Upload a file
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]string "Public URL of the stored file"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or oversized file"
// @Router /upload [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil || h.bucket == "" {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "file storage is not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("file exceeds maximum upload size"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		key := fmt.Sprintf("uploads/%s%s", uuid.New(), sanitizeExtension(header.Filename))

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		_, err = h.store.PutObject(r.Context(), &s3.PutObjectInput{
			Bucket:      aws.String(h.bucket),
			Key:         aws.String(key),
			Body:        file,
			ContentType: aws.String(contentType),
		})
		if err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("Failed to store uploaded file")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store file", err))
			return
		}

		url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.bucket, h.region, key)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{
			"url":       url,
			"file_name": header.Filename,
		})
	}
}

// sanitizeExtension keeps only a plain file extension from the client-supplied name.
func sanitizeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
