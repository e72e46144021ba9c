package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

type userInfo struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	resolver  IdentityResolver
	secret    []byte
	tokenTTL  time.Duration
}

func newAuthHandler(userRepo *database.UserRepo, resolver IdentityResolver, secret []byte, tokenTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		resolver:  resolver,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

// login exchanges email+password for a bearer token carrying role claims
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Email and password"
// @Success 200 {object} loginResponse "Bearer token and user"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		if req.Email == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email and password"))
			return
		}

		user, err := h.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		// Same response for unknown email and wrong password
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := IssueToken(user, h.secret, h.tokenTTL)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to issue token", err))
			return
		}

		h.responder.WriteJSON(w, loginResponse{
			Token: token,
			User:  userInfo{Email: user.Email, Role: user.Role},
		})
	}
}

// verify reports whether the supplied bearer token is valid and who it belongs to
// @Summary Verify token
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{} "Validity and user"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid or expired token"
// @Router /auth/verify [get]
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		identity, err := h.resolver.Resolve(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"valid": true,
			"user":  userInfo{Email: identity.Email, Role: identity.Role},
		})
	}
}
