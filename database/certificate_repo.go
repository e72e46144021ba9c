package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type CertificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db}
}

// FindAll returns all certificates ordered by display_order; insertion order breaks ties
func (r *CertificateRepo) FindAll() ([]*models.Certificate, error) {
	var certificates []*models.Certificate
	err := r.db.Order("display_order ASC, created_at ASC").Find(&certificates).Error
	return certificates, err
}

// FindByID returns a certificate by its ID, or nil if no row matches
func (r *CertificateRepo) FindByID(id uuid.UUID) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.First(&certificate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Add inserts a new certificate into the database
func (r *CertificateRepo) Add(certificate *models.Certificate) error {
	return r.db.Create(certificate).Error
}

// Update applies a partial update to the certificate with the given id
func (r *CertificateRepo) Update(id uuid.UUID, updates map[string]any) error {
	result := r.db.Model(&models.Certificate{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a certificate from the database by id
func (r *CertificateRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Certificate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
