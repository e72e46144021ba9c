package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate represents a professional certificate or award
type Certificate struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Issuer        string    `json:"issuer" db:"issuer" gorm:"type:text;not null"`
	IssueDate     *string   `json:"issue_date,omitempty" db:"issue_date" gorm:"type:text"`
	CredentialURL *string   `json:"credential_url,omitempty" db:"credential_url" gorm:"type:text"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`
	DisplayOrder  int       `json:"display_order" db:"display_order" gorm:"not null;default:0;index"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
