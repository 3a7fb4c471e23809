package service_test

import (
	"testing"
	"time"

	"org-management-backend/internal/auth"
	"org-management-backend/internal/database/models"
	apperrors "org-management-backend/internal/errors"
	"org-management-backend/internal/mocks"
	"org-management-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// OrganizationServiceTestSuite defines the test suite for OrganizationService
type OrganizationServiceTestSuite struct {
	suite.Suite
	ctrl                *gomock.Controller
	mockOrgRepo         *mocks.MockOrganizationRepositoryInterface
	mockAdminRepo       *mocks.MockAdminRepositoryInterface
	mockTenantRepo      *mocks.MockTenantRepositoryInterface
	organizationService *service.OrganizationService
	validator           *validator.Validate
}

// SetupTest sets up the test suite
func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockAdminRepo = mocks.NewMockAdminRepositoryInterface(suite.ctrl)
	suite.mockTenantRepo = mocks.NewMockTenantRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.organizationService = service.NewOrganizationService(
		suite.mockOrgRepo,
		suite.mockAdminRepo,
		suite.mockTenantRepo,
		auth.NewPasswordHasher(),
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *OrganizationServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateOrganization tests registering an organization with its admin
func (suite *OrganizationServiceTestSuite) TestCreateOrganization() {
	req := &service.CreateOrganizationRequest{
		OrganizationName: "TechCorp",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	// No existing organization with the same name
	suite.mockOrgRepo.EXPECT().
		GetByName(req.OrganizationName).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	// No existing admin with the same email
	suite.mockAdminRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockTenantRepo.EXPECT().
		CreateTenant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(org *models.Organization, admin *models.Admin) error {
			assert.Equal(suite.T(), "org_techcorp", org.CollectionName)
			assert.Equal(suite.T(), req.Email, org.AdminEmail)
			assert.Equal(suite.T(), req.OrganizationName, admin.OrganizationName)
			assert.True(suite.T(), admin.IsActive)
			// The password is stored hashed, never verbatim
			assert.NotEqual(suite.T(), req.Password, admin.HashedPassword)
			assert.Contains(suite.T(), admin.HashedPassword, "pbkdf2_sha256$")
			return nil
		}).
		Times(1)

	response, err := suite.organizationService.Create(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.OrganizationName, response.OrganizationName)
	assert.Equal(suite.T(), "org_techcorp", response.CollectionName)
	assert.Equal(suite.T(), req.Email, response.AdminEmail)
}

// TestCreateOrganizationValidationError tests creation with an invalid request
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationValidationError() {
	req := &service.CreateOrganizationRequest{
		OrganizationName: "", // Empty name should fail validation
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	response, err := suite.organizationService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestCreateOrganizationShortPassword tests creation with a too-short password
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationShortPassword() {
	req := &service.CreateOrganizationRequest{
		OrganizationName: "TechCorp",
		Email:            "admin@techcorp.com",
		Password:         "short",
	}

	response, err := suite.organizationService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestCreateOrganizationDuplicateName tests creation with a taken name
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationDuplicateName() {
	req := &service.CreateOrganizationRequest{
		OrganizationName: "TechCorp",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	existingOrg := &models.Organization{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		OrganizationName: req.OrganizationName,
		CollectionName:   "org_techcorp",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName(req.OrganizationName).
		Return(existingOrg, nil).
		Times(1)

	response, err := suite.organizationService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsAlreadyExists(err))
	assert.Contains(suite.T(), err.Error(), "organization already exists with this name")
}

// TestCreateOrganizationDuplicateEmail tests creation with a taken admin email
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationDuplicateEmail() {
	req := &service.CreateOrganizationRequest{
		OrganizationName: "TechCorp",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName(req.OrganizationName).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	existingAdmin := &models.Admin{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		Email:            req.Email,
		OrganizationName: "SomeOtherOrg",
	}

	suite.mockAdminRepo.EXPECT().
		GetByEmail(req.Email).
		Return(existingAdmin, nil).
		Times(1)

	response, err := suite.organizationService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsAlreadyExists(err))
	assert.Contains(suite.T(), err.Error(), "admin already exists with this email")
}

// TestCreateOrganizationUniqueViolation tests that a concurrent create caught
// by the unique index surfaces as an already-exists error
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationUniqueViolation() {
	req := &service.CreateOrganizationRequest{
		OrganizationName: "TechCorp",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName(req.OrganizationName).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockTenantRepo.EXPECT().
		CreateTenant(gomock.Any(), gomock.Any()).
		Return(apperrors.ErrOrganizationExists).
		Times(1)

	response, err := suite.organizationService.Create(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsAlreadyExists(err))
}

// TestGetOrganizationByName tests retrieving an organization
func (suite *OrganizationServiceTestSuite) TestGetOrganizationByName() {
	org := &models.Organization{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
		},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
		AdminEmail:       "admin@techcorp.com",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	response, err := suite.organizationService.GetByName("TechCorp")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "TechCorp", response.OrganizationName)
	assert.Equal(suite.T(), "org_techcorp", response.CollectionName)
	assert.Equal(suite.T(), "2025-03-01T12:00:00Z", response.CreatedAt)
}

// TestGetOrganizationByNameNotFound tests retrieving a missing organization
func (suite *OrganizationServiceTestSuite) TestGetOrganizationByNameNotFound() {
	suite.mockOrgRepo.EXPECT().
		GetByName("missing").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.organizationService.GetByName("missing")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsNotFound(err))
}

// TestListOrganizations tests listing organizations
func (suite *OrganizationServiceTestSuite) TestListOrganizations() {
	orgs := []models.Organization{
		{
			BaseModel:        models.BaseModel{ID: uuid.New()},
			OrganizationName: "TechCorp",
			CollectionName:   "org_techcorp",
			AdminEmail:       "admin@techcorp.com",
		},
		{
			BaseModel:        models.BaseModel{ID: uuid.New()},
			OrganizationName: "Acme Inc",
			CollectionName:   "org_acme_inc",
			AdminEmail:       "admin@acme.com",
		},
	}

	suite.mockOrgRepo.EXPECT().
		GetAll(100).
		Return(orgs, nil).
		Times(1)

	responses, err := suite.organizationService.List()

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), responses, 2)
	assert.Equal(suite.T(), "TechCorp", responses[0].OrganizationName)
	assert.Equal(suite.T(), "org_acme_inc", responses[1].CollectionName)
}

// TestUpdateOrganization tests renaming an organization
func (suite *OrganizationServiceTestSuite) TestUpdateOrganization() {
	createdAt := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	orgID := uuid.New()
	org := &models.Organization{
		BaseModel: models.BaseModel{
			ID:        orgID,
			CreatedAt: createdAt,
		},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
		AdminEmail:       "admin@techcorp.com",
	}
	admin := &models.Admin{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		Email:            "admin@techcorp.com",
		OrganizationName: "TechCorp",
		OrganizationID:   &orgID,
		IsActive:         true,
	}

	req := &service.UpdateOrganizationRequest{
		OrganizationName: "Tech Corp!",
		Email:            "new-admin@techcorp.com",
		Password:         "rotatedpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmailAndOrganization("admin@techcorp.com", "TechCorp").
		Return(admin, nil).
		Times(1)

	// New name must be free
	suite.mockOrgRepo.EXPECT().
		GetByName("Tech Corp!").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockTenantRepo.EXPECT().
		UpdateTenant(gomock.Any(), "org_techcorp", gomock.Any()).
		DoAndReturn(func(org *models.Organization, oldCollectionName string, admin *models.Admin) error {
			assert.Equal(suite.T(), "Tech Corp!", org.OrganizationName)
			assert.Equal(suite.T(), "org_tech_corp_", org.CollectionName)
			assert.Equal(suite.T(), "new-admin@techcorp.com", org.AdminEmail)
			assert.Equal(suite.T(), "new-admin@techcorp.com", admin.Email)
			assert.Equal(suite.T(), "Tech Corp!", admin.OrganizationName)
			return nil
		}).
		Times(1)

	response, err := suite.organizationService.Update("TechCorp", req, "admin@techcorp.com")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "Tech Corp!", response.OrganizationName)
	assert.Equal(suite.T(), "org_tech_corp_", response.CollectionName)
	// The creation timestamp survives the rename
	assert.Equal(suite.T(), "2025-01-15T09:30:00Z", response.CreatedAt)
}

// TestUpdateOrganizationSameName tests an update that keeps the name; no
// collision check runs and the collection name stays put
func (suite *OrganizationServiceTestSuite) TestUpdateOrganizationSameName() {
	orgID := uuid.New()
	org := &models.Organization{
		BaseModel:        models.BaseModel{ID: orgID},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
		AdminEmail:       "admin@techcorp.com",
	}
	admin := &models.Admin{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		Email:            "admin@techcorp.com",
		OrganizationName: "TechCorp",
		OrganizationID:   &orgID,
	}

	req := &service.UpdateOrganizationRequest{
		OrganizationName: "TechCorp",
		Email:            "admin@techcorp.com",
		Password:         "rotatedpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmailAndOrganization("admin@techcorp.com", "TechCorp").
		Return(admin, nil).
		Times(1)

	suite.mockTenantRepo.EXPECT().
		UpdateTenant(gomock.Any(), "org_techcorp", gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.organizationService.Update("TechCorp", req, "admin@techcorp.com")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "org_techcorp", response.CollectionName)
}

// TestUpdateOrganizationNotFound tests updating a missing organization
func (suite *OrganizationServiceTestSuite) TestUpdateOrganizationNotFound() {
	req := &service.UpdateOrganizationRequest{
		OrganizationName: "NewName",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("missing").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.organizationService.Update("missing", req, "admin@techcorp.com")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsNotFound(err))
}

// TestUpdateOrganizationWrongAdmin tests an update by an admin of a different
// organization
func (suite *OrganizationServiceTestSuite) TestUpdateOrganizationWrongAdmin() {
	org := &models.Organization{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
		AdminEmail:       "admin@techcorp.com",
	}

	req := &service.UpdateOrganizationRequest{
		OrganizationName: "NewName",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmailAndOrganization("intruder@other.com", "TechCorp").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.organizationService.Update("TechCorp", req, "intruder@other.com")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsAuthorization(err))
}

// TestUpdateOrganizationNameCollision tests renaming onto a taken name
func (suite *OrganizationServiceTestSuite) TestUpdateOrganizationNameCollision() {
	orgID := uuid.New()
	org := &models.Organization{
		BaseModel:        models.BaseModel{ID: orgID},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
		AdminEmail:       "admin@techcorp.com",
	}
	admin := &models.Admin{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		Email:            "admin@techcorp.com",
		OrganizationName: "TechCorp",
		OrganizationID:   &orgID,
	}
	takenOrg := &models.Organization{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		OrganizationName: "Acme Inc",
		CollectionName:   "org_acme_inc",
	}

	req := &service.UpdateOrganizationRequest{
		OrganizationName: "Acme Inc",
		Email:            "admin@techcorp.com",
		Password:         "strongpassword",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmailAndOrganization("admin@techcorp.com", "TechCorp").
		Return(admin, nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByName("Acme Inc").
		Return(takenOrg, nil).
		Times(1)

	response, err := suite.organizationService.Update("TechCorp", req, "admin@techcorp.com")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsAlreadyExists(err))
}

// TestDeleteOrganization tests tearing down a tenant
func (suite *OrganizationServiceTestSuite) TestDeleteOrganization() {
	orgID := uuid.New()
	org := &models.Organization{
		BaseModel:        models.BaseModel{ID: orgID},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
		AdminEmail:       "admin@techcorp.com",
	}
	admin := &models.Admin{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		Email:            "admin@techcorp.com",
		OrganizationName: "TechCorp",
		OrganizationID:   &orgID,
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmailAndOrganization("admin@techcorp.com", "TechCorp").
		Return(admin, nil).
		Times(1)

	suite.mockTenantRepo.EXPECT().
		DeleteTenant(org).
		Return(true, nil).
		Times(1)

	err := suite.organizationService.Delete("TechCorp", "admin@techcorp.com")

	assert.NoError(suite.T(), err)
}

// TestDeleteOrganizationNotFound tests deleting a missing organization
func (suite *OrganizationServiceTestSuite) TestDeleteOrganizationNotFound() {
	suite.mockOrgRepo.EXPECT().
		GetByName("missing").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	err := suite.organizationService.Delete("missing", "admin@techcorp.com")

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsNotFound(err))
}

// TestDeleteOrganizationWrongAdmin tests a delete by a non-member admin
func (suite *OrganizationServiceTestSuite) TestDeleteOrganizationWrongAdmin() {
	org := &models.Organization{
		BaseModel:        models.BaseModel{ID: uuid.New()},
		OrganizationName: "TechCorp",
		CollectionName:   "org_techcorp",
	}

	suite.mockOrgRepo.EXPECT().
		GetByName("TechCorp").
		Return(org, nil).
		Times(1)

	suite.mockAdminRepo.EXPECT().
		GetByEmailAndOrganization("intruder@other.com", "TechCorp").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	err := suite.organizationService.Delete("TechCorp", "intruder@other.com")

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsAuthorization(err))
}

// TestOrganizationServiceTestSuite runs the test suite
func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}

// TestDeriveCollectionName tests the name-to-collection derivation rules
func TestDeriveCollectionName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase word", "techcorp", "org_techcorp"},
		{"mixed case", "TechCorp", "org_techcorp"},
		{"spaces and punctuation", "Tech Corp!", "org_tech_corp_"},
		{"digits survive", "Acme 42", "org_acme_42"},
		{"unicode collapses", "Café", "org_caf_"},
		{"empty name", "", "org_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.DeriveCollectionName(tt.input))
		})
	}
}
