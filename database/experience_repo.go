package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

// FindAll returns all experience entries ordered by display_order; insertion order breaks ties
func (r *ExperienceRepo) FindAll() ([]*models.Experience, error) {
	var experiences []*models.Experience
	err := r.db.Order("display_order ASC, created_at ASC").Find(&experiences).Error
	return experiences, err
}

// FindByID returns an experience entry by its ID, or nil if no row matches
func (r *ExperienceRepo) FindByID(id uuid.UUID) (*models.Experience, error) {
	var experience models.Experience
	err := r.db.First(&experience, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

// Add inserts a new experience entry into the database
func (r *ExperienceRepo) Add(experience *models.Experience) error {
	return r.db.Create(experience).Error
}

// Update applies a partial update to the experience entry with the given id
func (r *ExperienceRepo) Update(id uuid.UUID, updates map[string]any) error {
	result := r.db.Model(&models.Experience{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an experience entry from the database by id
func (r *ExperienceRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Experience{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
