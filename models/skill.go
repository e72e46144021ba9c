package models

import (
	"time"

	"github.com/google/uuid"
)

// Skill categories displayed as groups on the skills section
const (
	SkillCategoryFrontend = "Frontend"
	SkillCategoryBackend  = "Backend"
	SkillCategoryDatabase = "Database"
	SkillCategoryTools    = "Tools & Others"
)

// Skill represents a single skill with a 0-100 proficiency score
type Skill struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Category     string    `json:"category" db:"category" gorm:"type:text;not null"`
	Proficiency  int       `json:"proficiency" db:"proficiency" gorm:"not null;default:0"`
	Icon         *string   `json:"icon,omitempty" db:"icon" gorm:"type:text"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0;index"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// ValidSkillCategory reports whether category is one of the known groups.
func ValidSkillCategory(category string) bool {
	switch category {
	case SkillCategoryFrontend, SkillCategoryBackend, SkillCategoryDatabase, SkillCategoryTools:
		return true
	}
	return false
}
