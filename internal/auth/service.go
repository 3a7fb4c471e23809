package auth

import (
	"errors"
	"fmt"
	"time"

	"org-management-backend/internal/config"
	"org-management-backend/internal/database/models"
	apperrors "org-management-backend/internal/errors"
	"org-management-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

//go:generate mockgen -source=service.go -destination=../mocks/auth_mocks.go -package=mocks

// AdminClaims represents JWT token claims for an authenticated administrator
type AdminClaims struct {
	OrganizationName string `json:"organization_name"`
	OrganizationID   string `json:"organization_id"`
	jwt.RegisteredClaims
}

// AuthServiceInterface defines the interface for the authentication service
type AuthServiceInterface interface {
	Authenticate(email, password string) (*models.Admin, error)
	GenerateToken(admin *models.Admin) (string, error)
	ValidateToken(tokenString string) (*AdminClaims, error)
}

// AuthService verifies administrator credentials and issues bearer tokens
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepositoryInterface
	hasher    *PasswordHasher
}

// NewAuthService creates a new authentication service
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepositoryInterface, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		hasher:    hasher,
	}
}

// Authenticate verifies an administrator's credentials. Unknown email,
// inactive account and wrong password all collapse into ErrInvalidCredentials
// so callers cannot enumerate accounts.
func (s *AuthService) Authenticate(email, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if !s.hasher.Verify(password, admin.HashedPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	return admin, nil
}

// GenerateToken creates a signed JWT for the administrator
func (s *AuthService) GenerateToken(admin *models.Admin) (string, error) {
	now := time.Now()
	organizationID := ""
	if admin.OrganizationID != nil {
		organizationID = admin.OrganizationID.String()
	}

	claims := &AdminClaims{
		OrganizationName: admin.OrganizationName,
		OrganizationID:   organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.AccessTokenExpireMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken validates and parses a JWT. Signature, shape and expiry
// failures are indistinguishable to the caller.
func (s *AuthService) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
