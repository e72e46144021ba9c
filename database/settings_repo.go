package database

import (
	"errors"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The singleton repos all follow the same contract: Get returns the one row
// or nil when none exists yet, and Upsert guarantees the row exists before
// applying a partial update. The insert goes through an ON CONFLICT DO
// NOTHING on the unique singleton_key column, so concurrent first writes
// cannot produce a second row.

type ProfileSettingsRepo struct {
	db *gorm.DB
}

func NewProfileSettingsRepo(db *gorm.DB) *ProfileSettingsRepo {
	return &ProfileSettingsRepo{db}
}

// Get returns the profile settings row, or nil if none exists yet
func (r *ProfileSettingsRepo) Get() (*models.ProfileSettings, error) {
	var settings models.ProfileSettings
	err := r.db.First(&settings, "singleton_key = ?", models.SingletonKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert ensures the singleton row exists and applies a partial update to it
func (r *ProfileSettingsRepo) Upsert(updates map[string]any) (*models.ProfileSettings, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		seed := models.ProfileSettings{SingletonKey: models.SingletonKey}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton_key"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.ProfileSettings{}).
			Where("singleton_key = ?", models.SingletonKey).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get()
}

// Count returns the number of profile settings rows; used to assert the singleton invariant
func (r *ProfileSettingsRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ProfileSettings{}).Count(&count).Error
	return count, err
}

type ResumeSettingsRepo struct {
	db *gorm.DB
}

func NewResumeSettingsRepo(db *gorm.DB) *ResumeSettingsRepo {
	return &ResumeSettingsRepo{db}
}

// Get returns the resume settings row, or nil if none exists yet
func (r *ResumeSettingsRepo) Get() (*models.ResumeSettings, error) {
	var settings models.ResumeSettings
	err := r.db.First(&settings, "singleton_key = ?", models.SingletonKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert ensures the singleton row exists and applies a partial update to it
func (r *ResumeSettingsRepo) Upsert(updates map[string]any) (*models.ResumeSettings, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		seed := models.ResumeSettings{SingletonKey: models.SingletonKey}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton_key"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.ResumeSettings{}).
			Where("singleton_key = ?", models.SingletonKey).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get()
}

type NotificationSettingsRepo struct {
	db *gorm.DB
}

func NewNotificationSettingsRepo(db *gorm.DB) *NotificationSettingsRepo {
	return &NotificationSettingsRepo{db}
}

// Get returns the notification settings row, or nil if none exists yet
func (r *NotificationSettingsRepo) Get() (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := r.db.First(&settings, "singleton_key = ?", models.SingletonKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert ensures the singleton row exists and applies a partial update to it
func (r *NotificationSettingsRepo) Upsert(updates map[string]any) (*models.NotificationSettings, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		seed := models.NotificationSettings{SingletonKey: models.SingletonKey}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton_key"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.NotificationSettings{}).
			Where("singleton_key = ?", models.SingletonKey).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get()
}
