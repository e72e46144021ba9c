package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project with metadata
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	ImageURL     *string                     `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`
	TechStack    datatypes.JSONSlice[string] `json:"tech_stack" db:"tech_stack"`
	GithubURL    *string                     `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	LiveURL      *string                     `json:"live_url,omitempty" db:"live_url" gorm:"type:text"`
	Featured     bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	DisplayOrder int                         `json:"display_order" db:"display_order" gorm:"not null;default:0;index"`
	CreatedAt    time.Time                   `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
