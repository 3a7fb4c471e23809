package repository

import (
	"org-management-backend/internal/database/models"

	"gorm.io/gorm"
)

// OrganizationRepository handles master-database reads for organizations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// GetByName retrieves an organization by name
func (r *OrganizationRepository) GetByName(name string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "organization_name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetAll retrieves organizations up to the given cap
func (r *OrganizationRepository) GetAll(limit int) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.Limit(limit).Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}
