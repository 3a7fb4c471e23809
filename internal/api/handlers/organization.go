package handlers

import (
	"net/http"

	"org-management-backend/internal/auth"
	apperrors "org-management-backend/internal/errors"
	"org-management-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests for organizations
type OrganizationHandler struct {
	service service.OrganizationServiceInterface
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(service service.OrganizationServiceInterface) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// CreateOrganization handles POST /org/create
// @Summary Register a new organization
// @Description Create an organization with its administrator account and an isolated data partition
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body service.CreateOrganizationRequest true "Organization registration data"
// @Success 201 {object} service.OrganizationResponse "Successfully created organization"
// @Failure 400 {object} map[string]interface{} "Name or email already in use, or invalid input"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /org/create [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req service.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	org, err := h.service.Create(&req)
	if err != nil {
		if apperrors.IsAlreadyExists(err) || apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	org.Message = "Organization created successfully"
	c.JSON(http.StatusCreated, org)
}

// GetOrganization handles GET /org/get
// @Summary Get organization by name
// @Description Look up an organization by its name
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization_name query string true "Organization name"
// @Success 200 {object} service.OrganizationResponse "Successfully retrieved organization"
// @Failure 400 {object} map[string]interface{} "Missing organization name"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /org/get [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	name := c.Query("organization_name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_name is required"})
		return
	}

	org, err := h.service.GetByName(name)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get organization"})
		return
	}

	c.JSON(http.StatusOK, org)
}

// ListOrganizations handles GET /org/list
// @Summary List organizations
// @Description List registered organizations, capped at 100 entries
// @Tags organizations
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Organizations"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /org/list [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs, "count": len(orgs)})
}

// UpdateOrganization handles PUT /org/update
// @Summary Rename or update an organization
// @Description Rename an organization, moving its data partition, and rotate the administrator credentials
// @Tags organizations
// @Accept json
// @Produce json
// @Param old_organization_name query string true "Current organization name"
// @Param organization body service.UpdateOrganizationRequest true "New organization data"
// @Success 200 {object} service.OrganizationResponse "Successfully updated organization"
// @Failure 400 {object} map[string]interface{} "Validation, ownership or name-collision error"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /org/update [put]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	oldName := c.Query("old_organization_name")
	if oldName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old_organization_name is required"})
		return
	}

	adminEmail, ok := auth.GetAdminEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication credentials"})
		return
	}

	var req service.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	org, err := h.service.Update(oldName, &req, adminEmail)
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case apperrors.IsAlreadyExists(err), apperrors.IsValidation(err), apperrors.IsAuthorization(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
		}
		return
	}

	org.Message = "Organization updated successfully"
	c.JSON(http.StatusOK, org)
}

// DeleteOrganization handles DELETE /org/delete
// @Summary Delete an organization
// @Description Tear down an organization, its administrators and its data partition
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization_name query string true "Organization name"
// @Success 200 {object} map[string]interface{} "Organization deleted"
// @Failure 400 {object} map[string]interface{} "Ownership error"
// @Failure 401 {object} map[string]interface{} "Missing or invalid token"
// @Failure 404 {object} map[string]interface{} "Organization not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /org/delete [delete]
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	name := c.Query("organization_name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization_name is required"})
		return
	}

	adminEmail, ok := auth.GetAdminEmail(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication credentials"})
		return
	}

	if err := h.service.Delete(name, adminEmail); err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case apperrors.IsAuthorization(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete organization"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "Organization deleted successfully",
		"organization_name": name,
	})
}
