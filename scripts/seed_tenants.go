package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"org-management-backend/internal/auth"
	"org-management-backend/internal/config"
	"org-management-backend/internal/database"
	"org-management-backend/internal/database/models"
	"org-management-backend/internal/repository"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TenantData describes one organization to provision, matching the
// shape of the POST /org/create request body.
type TenantData struct {
	OrganizationName string `yaml:"organization_name"`
	Email            string `yaml:"email"`
	Password         string `yaml:"password"`
}

type TenantsFile struct {
	Tenants []TenantData `yaml:"tenants"`
}

func main() {
	log.Println("🚀 Seeding tenants from YAML...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	dataFile := "scripts/data/tenants.yaml"
	if len(os.Args) > 1 {
		dataFile = os.Args[1]
	}

	tenants, err := loadTenants(dataFile)
	if err != nil {
		log.Fatalf("Failed to load tenants file: %v", err)
	}

	created, skipped, err := seedTenants(db, tenants)
	if err != nil {
		log.Fatalf("Failed to seed tenants: %v", err)
	}

	log.Printf("📋 Tenants: %d created, %d already present, %d total", created, skipped, len(tenants))
	log.Println("✅ Tenants seeded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadTenants(path string) ([]TenantData, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var file TenantsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i, tenant := range file.Tenants {
		if tenant.OrganizationName == "" || tenant.Email == "" || tenant.Password == "" {
			return nil, fmt.Errorf("tenant %d in %s is missing organization_name, email or password", i, path)
		}
	}

	return file.Tenants, nil
}

// seedTenants provisions every tenant that does not exist yet. Existing
// organizations are left untouched so the script stays idempotent.
func seedTenants(db *gorm.DB, tenants []TenantData) (created, skipped int, err error) {
	orgRepo := repository.NewOrganizationRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	hasher := auth.NewPasswordHasher()

	for _, tenant := range tenants {
		_, err := orgRepo.GetByName(tenant.OrganizationName)
		if err == nil {
			skipped++
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return created, skipped, fmt.Errorf("failed to check organization %s: %w", tenant.OrganizationName, err)
		}

		hashed, err := hasher.Hash(tenant.Password)
		if err != nil {
			return created, skipped, fmt.Errorf("failed to hash password for %s: %w", tenant.Email, err)
		}

		org := &models.Organization{
			OrganizationName: tenant.OrganizationName,
			CollectionName:   models.DeriveCollectionName(tenant.OrganizationName),
			AdminEmail:       tenant.Email,
		}
		admin := &models.Admin{
			Email:            tenant.Email,
			HashedPassword:   hashed,
			OrganizationName: tenant.OrganizationName,
			IsActive:         true,
		}

		if err := tenantRepo.CreateTenant(org, admin); err != nil {
			return created, skipped, fmt.Errorf("failed to create tenant %s: %w", tenant.OrganizationName, err)
		}
		created++
		log.Printf("  created %s (%s)", org.OrganizationName, org.CollectionName)
	}

	return created, skipped, nil
}
