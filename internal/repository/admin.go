package repository

import (
	"org-management-backend/internal/database/models"

	"gorm.io/gorm"
)

// AdminRepository handles master-database reads for administrators
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an administrator by email
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByEmailAndOrganization retrieves an administrator by email scoped to an
// organization. Used as the ownership check on mutating tenant operations.
func (r *AdminRepository) GetByEmailAndOrganization(email, organizationName string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "email = ? AND organization_name = ?", email, organizationName).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
