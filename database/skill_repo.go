package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills ordered by display_order; insertion order breaks ties
func (r *SkillRepo) FindAll() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Order("display_order ASC, created_at ASC").Find(&skills).Error
	return skills, err
}

// FindByID returns a skill by its ID, or nil if no row matches
func (r *SkillRepo) FindByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// Add inserts a new skill into the database
func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// Update applies a partial update to the skill with the given id
func (r *SkillRepo) Update(id uuid.UUID, updates map[string]any) error {
	result := r.db.Model(&models.Skill{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a skill from the database by id
func (r *SkillRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Skill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
