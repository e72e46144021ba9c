package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Experience entry types
const (
	ExperienceTypeJob        = "job"
	ExperienceTypeInternship = "internship"
	ExperienceTypeFreelance  = "freelance"
	ExperienceTypeEducation  = "education"
)

// Experience represents a work or education history entry
type Experience struct {
	ID             uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title          string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Company        string                      `json:"company" db:"company" gorm:"type:text;not null"`
	Location       *string                     `json:"location,omitempty" db:"location" gorm:"type:text"`
	Period         string                      `json:"period" db:"period" gorm:"type:text;not null"`
	Description    datatypes.JSONSlice[string] `json:"description" db:"description"`
	Technologies   datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	ExperienceType string                      `json:"experience_type" db:"experience_type" gorm:"type:text;not null;default:'job'"`
	IsCurrent      bool                        `json:"is_current" db:"is_current" gorm:"not null;default:false"`
	DisplayOrder   int                         `json:"display_order" db:"display_order" gorm:"not null;default:0;index"`
	CreatedAt      time.Time                   `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// ValidExperienceType reports whether t is one of the known entry types.
func ValidExperienceType(t string) bool {
	switch t {
	case ExperienceTypeJob, ExperienceTypeInternship, ExperienceTypeFreelance, ExperienceTypeEducation:
		return true
	}
	return false
}
