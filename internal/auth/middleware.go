package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	service AuthServiceInterface
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates bearer tokens and sets admin context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Extract token from Bearer header
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.service.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication credentials"})
			c.Abort()
			return
		}

		// Set admin context
		c.Set("admin_email", claims.Subject)
		c.Set("organization_name", claims.OrganizationName)
		c.Set("admin_claims", claims)

		c.Next()
	}
}

// GetAdminEmail is a helper function to extract the admin email from context
func GetAdminEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("admin_email")
	if !exists {
		return "", false
	}

	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetOrganizationName is a helper function to extract the organization name from context
func GetOrganizationName(c *gin.Context) (string, bool) {
	name, exists := c.Get("organization_name")
	if !exists {
		return "", false
	}

	nameStr, ok := name.(string)
	return nameStr, ok
}

// GetAdminClaims is a helper function to extract full claims from context
func GetAdminClaims(c *gin.Context) (*AdminClaims, bool) {
	claims, exists := c.Get("admin_claims")
	if !exists {
		return nil, false
	}

	adminClaims, ok := claims.(*AdminClaims)
	return adminClaims, ok
}
