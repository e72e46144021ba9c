package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Identity is the resolved caller: who they are and whether admin surfaces
// are open to them. Handlers depend on this capability only, never on how
// the role was resolved.
type Identity struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	IsAdmin bool      `json:"is_admin"`
}

// IdentityResolver turns a bearer token into an Identity. Two strategies
// exist: trusting the role claim baked into the token, or re-checking the
// roles table on every request. The middleware uses whichever is configured.
type IdentityResolver interface {
	Resolve(tokenString string) (Identity, error)
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the user's email and role.
func IssueToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	claims := tokenClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

// claimsResolver trusts the role claim inside the verified token.
type claimsResolver struct {
	secret []byte
}

func NewClaimsResolver(secret []byte) IdentityResolver {
	return claimsResolver{secret: secret}
}

func (r claimsResolver) Resolve(tokenString string) (Identity, error) {
	claims, err := parseToken(tokenString, r.secret)
	if err != nil {
		return Identity{}, errs.NewUnauthorizedError("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, errs.NewUnauthorizedError("invalid token subject")
	}
	return Identity{
		UserID:  userID,
		Email:   claims.Email,
		Role:    claims.Role,
		IsAdmin: claims.Role == models.RoleAdmin,
	}, nil
}

// roleTableResolver verifies the token but resolves admin status from the
// roles table instead of the claim, so revoking a grant takes effect without
// waiting for the token to expire.
type roleTableResolver struct {
	secret   []byte
	userRepo *database.UserRepo
}

func NewRoleTableResolver(secret []byte, userRepo *database.UserRepo) IdentityResolver {
	return roleTableResolver{secret: secret, userRepo: userRepo}
}

func (r roleTableResolver) Resolve(tokenString string) (Identity, error) {
	claims, err := parseToken(tokenString, r.secret)
	if err != nil {
		return Identity{}, errs.NewUnauthorizedError("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, errs.NewUnauthorizedError("invalid token subject")
	}
	isAdmin, err := r.userRepo.HasRole(userID, models.RoleAdmin)
	if err != nil {
		return Identity{}, errs.NewInternalErrorWithCause("failed to resolve role", err)
	}
	role := claims.Role
	if isAdmin {
		role = models.RoleAdmin
	}
	return Identity{
		UserID:  userID,
		Email:   claims.Email,
		Role:    role,
		IsAdmin: isAdmin,
	}, nil
}
