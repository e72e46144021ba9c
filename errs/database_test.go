package errs_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

func TestNewDatabaseErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		cause  error
		status int
	}{
		{"gorm record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"postgres duplicate key", errors.New(`duplicate key value violates unique constraint "idx_users_email"`), http.StatusConflict},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: users.email"), http.StatusConflict},
		{"foreign key violation", errors.New("insert violates foreign key constraint"), http.StatusBadRequest},
		{"connection refused", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"anything else", errors.New("syntax error"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := errs.NewDatabaseError("create", "user", tc.cause)
			assert.Equal(t, tc.status, apiErr.StatusCode)
		})
	}
}

func TestApiErrWrapping(t *testing.T) {
	err := errs.NewMissingRequiredFieldError("title")
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	assert.Equal(t, "title", err.Field)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	wrapped := errs.NewInternalErrorWithCause("failed to issue token", errors.New("bad key"))
	assert.Contains(t, wrapped.GetFullError(), "bad key")
}
