package testutils

import (
	"time"

	"org-management-backend/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationName: "Test Organization",
		CollectionName:   models.DeriveCollectionName("Test Organization"),
		AdminEmail:       "admin@test.com",
	}
}

// WithName sets a custom name for the organization and re-derives the
// partition identifier
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.OrganizationName = name
	org.CollectionName = models.DeriveCollectionName(name)
	return org
}

// AdminFactory provides methods to create test Admin data
type AdminFactory struct{}

// NewAdminFactory creates a new AdminFactory
func NewAdminFactory() *AdminFactory {
	return &AdminFactory{}
}

// Create creates a test Admin with default values
func (f *AdminFactory) Create() *models.Admin {
	return &models.Admin{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Email:            "admin@test.com",
		HashedPassword:   "pbkdf2_sha256$29000$c2FsdHNhbHRzYWx0c2FsdA$unused-test-hash",
		OrganizationName: "Test Organization",
		IsActive:         true,
	}
}

// ForOrganization creates an admin owned by the given organization
func (f *AdminFactory) ForOrganization(org *models.Organization, email string) *models.Admin {
	admin := f.Create()
	admin.Email = email
	admin.OrganizationName = org.OrganizationName
	admin.OrganizationID = &org.ID
	return admin
}

// FactorySet bundles all factories for convenience
type FactorySet struct {
	Organization *OrganizationFactory
	Admin        *AdminFactory
}

// NewFactorySet creates a new FactorySet
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		Admin:        NewAdminFactory(),
	}
}
