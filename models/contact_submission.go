package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is an inbound message from the public contact form.
// Rows are append-only from the public side; admins toggle is_read or delete.
type ContactSubmission struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read" db:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}
