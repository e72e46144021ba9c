package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User is an account that can sign in to the admin surface.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         string    `json:"role" db:"role" gorm:"type:text;not null;default:'viewer'"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// UserRole records a role grant for a user. It backs the roles-table
// identity strategy, where "is admin" is resolved by lookup instead of
// trusting the role claim baked into the token.
type UserRole struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}
