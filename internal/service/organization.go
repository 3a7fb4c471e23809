package service

import (
	"errors"
	"fmt"

	"org-management-backend/internal/auth"
	"org-management-backend/internal/database/models"
	apperrors "org-management-backend/internal/errors"
	"org-management-backend/internal/logger"
	"org-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// listLimit caps ListOrganizations; there is no pagination cursor.
const listLimit = 100

// OrganizationService handles the tenant lifecycle: provisioning, rename and
// teardown of an organization together with its administrator and data
// partition.
type OrganizationService struct {
	orgRepo    repository.OrganizationRepositoryInterface
	adminRepo  repository.AdminRepositoryInterface
	tenantRepo repository.TenantRepositoryInterface
	hasher     *auth.PasswordHasher
	validator  *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo repository.OrganizationRepositoryInterface,
	adminRepo repository.AdminRepositoryInterface,
	tenantRepo repository.TenantRepositoryInterface,
	hasher *auth.PasswordHasher,
	validator *validator.Validate,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		adminRepo:  adminRepo,
		tenantRepo: tenantRepo,
		hasher:     hasher,
		validator:  validator,
	}
}

// CreateOrganizationRequest represents the request to register an organization
type CreateOrganizationRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
}

// UpdateOrganizationRequest represents the request to rename/update an organization
type UpdateOrganizationRequest struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
}

// OrganizationResponse represents the response for organization operations
type OrganizationResponse struct {
	OrganizationName string `json:"organization_name"`
	CollectionName   string `json:"collection_name"`
	AdminEmail       string `json:"admin_email"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	Message          string `json:"message,omitempty"`
}

// Create registers a new organization with its first administrator and an
// empty, metadata-seeded data partition. The existence checks are a fast
// path; the unique indexes backstop concurrent creates.
func (s *OrganizationService) Create(req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := s.orgRepo.GetByName(req.OrganizationName); err == nil {
		return nil, apperrors.ErrOrganizationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing organization: %w", err)
	}

	if _, err := s.adminRepo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrAdminExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	org := &models.Organization{
		OrganizationName: req.OrganizationName,
		CollectionName:   models.DeriveCollectionName(req.OrganizationName),
		AdminEmail:       req.Email,
	}
	admin := &models.Admin{
		Email:            req.Email,
		HashedPassword:   hashedPassword,
		OrganizationName: req.OrganizationName,
		IsActive:         true,
	}

	if err := s.tenantRepo.CreateTenant(org, admin); err != nil {
		if apperrors.IsAlreadyExists(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	logger.New().WithFields(map[string]interface{}{
		"organization_name": org.OrganizationName,
		"collection_name":   org.CollectionName,
	}).Info("Organization provisioned")

	return s.toResponse(org), nil
}

// GetByName retrieves an organization by name
func (s *OrganizationService) GetByName(name string) (*OrganizationResponse, error) {
	org, err := s.orgRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return s.toResponse(org), nil
}

// List retrieves organizations up to the listing cap
func (s *OrganizationService) List() ([]OrganizationResponse, error) {
	orgs, err := s.orgRepo.GetAll(listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	responses := make([]OrganizationResponse, len(orgs))
	for i, org := range orgs {
		responses[i] = *s.toResponse(&org)
	}
	return responses, nil
}

// Update renames an organization and rotates its administrator credentials.
// The requesting admin must belong to the organization being updated. The
// partition move, record updates and old-partition drop commit atomically;
// the creation timestamp is preserved.
func (s *OrganizationService) Update(oldName string, req *UpdateOrganizationRequest, adminEmail string) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	org, err := s.orgRepo.GetByName(oldName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	admin, err := s.adminRepo.GetByEmailAndOrganization(adminEmail, oldName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdminNotInOrganization
		}
		return nil, fmt.Errorf("failed to check admin ownership: %w", err)
	}

	if req.OrganizationName != oldName {
		if _, err := s.orgRepo.GetByName(req.OrganizationName); err == nil {
			return nil, apperrors.ErrOrganizationExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check new organization name: %w", err)
		}
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	oldCollectionName := org.CollectionName
	org.OrganizationName = req.OrganizationName
	org.CollectionName = models.DeriveCollectionName(req.OrganizationName)
	org.AdminEmail = req.Email

	admin.Email = req.Email
	admin.HashedPassword = hashedPassword
	admin.OrganizationName = req.OrganizationName

	if err := s.tenantRepo.UpdateTenant(org, oldCollectionName, admin); err != nil {
		if apperrors.IsAlreadyExists(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	logger.New().WithFields(map[string]interface{}{
		"organization_name":     org.OrganizationName,
		"old_organization_name": oldName,
		"collection_name":       org.CollectionName,
	}).Info("Organization updated")

	return s.toResponse(org), nil
}

// Delete tears the tenant down: partition, admins, then the organization
// record. The requesting admin must belong to the organization.
func (s *OrganizationService) Delete(name string, adminEmail string) error {
	org, err := s.orgRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to get organization: %w", err)
	}

	if _, err := s.adminRepo.GetByEmailAndOrganization(adminEmail, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAdminNotInOrganization
		}
		return fmt.Errorf("failed to check admin ownership: %w", err)
	}

	removed, err := s.tenantRepo.DeleteTenant(org)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if !removed {
		return apperrors.ErrOrganizationNotFound
	}

	logger.New().WithFields(map[string]interface{}{
		"organization_name": name,
		"collection_name":   org.CollectionName,
	}).Info("Organization deleted")

	return nil
}

// toResponse converts an organization model to response
func (s *OrganizationService) toResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		OrganizationName: org.OrganizationName,
		CollectionName:   org.CollectionName,
		AdminEmail:       org.AdminEmail,
		CreatedAt:        org.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        org.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
