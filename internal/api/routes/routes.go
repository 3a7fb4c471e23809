package routes

import (
	"org-management-backend/internal/api/handlers"
	"org-management-backend/internal/api/middleware"
	"org-management-backend/internal/auth"
	"org-management-backend/internal/config"
	"org-management-backend/internal/repository"
	"org-management-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	tenantRepo := repository.NewTenantRepository(db)

	// Initialize services
	hasher := auth.NewPasswordHasher()
	authService := auth.NewAuthService(cfg, adminRepo, hasher)
	organizationService := service.NewOrganizationService(organizationRepo, adminRepo, tenantRepo, hasher, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Health check routes
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Admin authentication routes
	admin := router.Group("/admin")
	{
		admin.POST("/login", authHandler.Login)
	}

	// Organization routes; mutations require a bearer token
	org := router.Group("/org")
	{
		org.POST("/create", organizationHandler.CreateOrganization)
		org.GET("/get", organizationHandler.GetOrganization)
		org.GET("/list", organizationHandler.ListOrganizations)
		org.PUT("/update", authMiddleware.RequireAuth(), organizationHandler.UpdateOrganization)
		org.DELETE("/delete", authMiddleware.RequireAuth(), organizationHandler.DeleteOrganization)
	}

	return router
}
