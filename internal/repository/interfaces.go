package repository

import (
	"org-management-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	GetByName(name string) (*models.Organization, error)
	GetAll(limit int) ([]models.Organization, error)
}

// AdminRepositoryInterface defines the interface for admin repository operations
type AdminRepositoryInterface interface {
	GetByEmail(email string) (*models.Admin, error)
	GetByEmailAndOrganization(email, organizationName string) (*models.Admin, error)
}

// TenantRepositoryInterface defines the interface for the multi-step tenant
// lifecycle writes. Each operation commits in a single transaction.
type TenantRepositoryInterface interface {
	CreateTenant(org *models.Organization, admin *models.Admin) error
	UpdateTenant(org *models.Organization, oldCollectionName string, admin *models.Admin) error
	DeleteTenant(org *models.Organization) (bool, error)
	PartitionExists(collectionName string) (bool, error)
	PartitionDocumentCount(collectionName string) (int64, error)
}
