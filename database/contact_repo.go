package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ContactSubmissionRepo struct {
	db *gorm.DB
}

func NewContactSubmissionRepo(db *gorm.DB) *ContactSubmissionRepo {
	return &ContactSubmissionRepo{db}
}

// FindAll returns all submissions, newest first
func (r *ContactSubmissionRepo) FindAll() ([]*models.ContactSubmission, error) {
	var submissions []*models.ContactSubmission
	err := r.db.Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

// FindByID returns a submission by its ID, or nil if no row matches
func (r *ContactSubmissionRepo) FindByID(id uuid.UUID) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.First(&submission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// Add inserts a new submission
func (r *ContactSubmissionRepo) Add(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

// MarkRead sets is_read on the submission with the given id
func (r *ContactSubmissionRepo) MarkRead(id uuid.UUID) error {
	result := r.db.Model(&models.ContactSubmission{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a submission by id
func (r *ContactSubmissionRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.ContactSubmission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUnread returns the number of submissions not yet marked read
func (r *ContactSubmissionRepo) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactSubmission{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}
