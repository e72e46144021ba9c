package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SingletonKey is the fixed conflict key for single-row settings tables.
// A unique index on the column lets concurrent first writes collapse into
// one row instead of racing a read-then-insert.
const SingletonKey = "default"

// ProfileSettings holds the site-wide profile content. Exactly one row.
type ProfileSettings struct {
	ID            uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SingletonKey  string                      `json:"-" db:"singleton_key" gorm:"type:text;not null;uniqueIndex;default:'default'"`
	HeroTitle     *string                     `json:"hero_title,omitempty" db:"hero_title" gorm:"type:text"`
	HeroSubtitle  *string                     `json:"hero_subtitle,omitempty" db:"hero_subtitle" gorm:"type:text"`
	AboutText     *string                     `json:"about_text,omitempty" db:"about_text" gorm:"type:text"`
	FooterText    *string                     `json:"footer_text,omitempty" db:"footer_text" gorm:"type:text"`
	GithubURL     *string                     `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	LinkedinURL   *string                     `json:"linkedin_url,omitempty" db:"linkedin_url" gorm:"type:text"`
	TwitterURL    *string                     `json:"twitter_url,omitempty" db:"twitter_url" gorm:"type:text"`
	ContactEmail  *string                     `json:"contact_email,omitempty" db:"contact_email" gorm:"type:text"`
	StatProjects  *string                     `json:"stat_projects,omitempty" db:"stat_projects" gorm:"type:text"`
	StatYears     *string                     `json:"stat_years,omitempty" db:"stat_years" gorm:"type:text"`
	StatClients   *string                     `json:"stat_clients,omitempty" db:"stat_clients" gorm:"type:text"`
	AvatarURL     *string                     `json:"avatar_url,omitempty" db:"avatar_url" gorm:"type:text"`
	BackgroundURL *string                     `json:"background_url,omitempty" db:"background_url" gorm:"type:text"`
	AboutImageURL *string                     `json:"about_image_url,omitempty" db:"about_image_url" gorm:"type:text"`
	CareerGoals   datatypes.JSONSlice[string] `json:"career_goals" db:"career_goals"`
	CreatedAt     time.Time                   `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// ResumeSettings points at the current downloadable resume. Exactly one row.
type ResumeSettings struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SingletonKey string    `json:"-" db:"singleton_key" gorm:"type:text;not null;uniqueIndex;default:'default'"`
	FileURL      *string   `json:"file_url,omitempty" db:"file_url" gorm:"type:text"`
	FileName     *string   `json:"file_name,omitempty" db:"file_name" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// NotificationSettings controls contact-form notification routing. Exactly one row.
type NotificationSettings struct {
	ID                    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SingletonKey          string    `json:"-" db:"singleton_key" gorm:"type:text;not null;uniqueIndex;default:'default'"`
	NotificationEmail     *string   `json:"notification_email,omitempty" db:"notification_email" gorm:"type:text"`
	SendConfirmationEmail bool      `json:"send_confirmation_email" db:"send_confirmation_email" gorm:"not null;default:false"`
	CreatedAt             time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}
