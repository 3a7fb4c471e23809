package auth

import (
	"net/http"

	apperrors "org-management-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication HTTP endpoints
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest represents the admin login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents a successful login response
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	AdminEmail       string `json:"admin_email"`
	OrganizationName string `json:"organization_name"`
}

// Login handles POST /admin/login
// @Summary Administrator login
// @Description Authenticate an administrator and issue a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} TokenResponse "Token issued"
// @Failure 401 {object} map[string]interface{} "Incorrect email or password"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	admin, err := h.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if apperrors.IsAuthentication(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
			return
		}
		logrus.WithError(err).Error("admin login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
		return
	}

	token, err := h.service.GenerateToken(admin)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:      token,
		TokenType:        "bearer",
		AdminEmail:       admin.Email,
		OrganizationName: admin.OrganizationName,
	})
}
