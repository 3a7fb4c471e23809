package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"org-management-backend/internal/database/models"
	apperrors "org-management-backend/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// validPartitionName guards interpolated identifiers. DeriveCollectionName
// can only produce names of this shape.
var validPartitionName = regexp.MustCompile(`^org_[a-z0-9_]*$`)

const uniqueViolationCode = "23505"

// TenantRepository owns the multi-step tenant lifecycle writes. Every
// operation runs in one Postgres transaction, partition DDL included, so a
// failure at any step rolls the whole tenant back.
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// CreateTenant inserts the organization and its first administrator, creates
// the tenant partition table and seeds it with the metadata document.
func (r *TenantRepository) CreateTenant(org *models.Organization, admin *models.Admin) error {
	if err := validatePartitionName(org.CollectionName); err != nil {
		return err
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		admin.OrganizationID = &org.ID
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		if err := createPartition(tx, org.CollectionName); err != nil {
			return err
		}

		return seedPartitionMetadata(tx, org.CollectionName, org.OrganizationName)
	})

	return translateUniqueViolation(err)
}

// UpdateTenant applies a rename: org and admin carry the new field values and
// are saved under their existing primary keys. When the partition identifier
// changed, documents are copied into a fresh partition and the old one is
// dropped after the record updates succeed.
func (r *TenantRepository) UpdateTenant(org *models.Organization, oldCollectionName string, admin *models.Admin) error {
	if err := validatePartitionName(org.CollectionName); err != nil {
		return err
	}
	if err := validatePartitionName(oldCollectionName); err != nil {
		return err
	}
	renamed := org.CollectionName != oldCollectionName

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if renamed {
			if err := createPartition(tx, org.CollectionName); err != nil {
				return err
			}
			if err := copyPartition(tx, oldCollectionName, org.CollectionName); err != nil {
				return err
			}
		}

		if err := tx.Save(org).Error; err != nil {
			return err
		}
		if err := tx.Save(admin).Error; err != nil {
			return err
		}

		if renamed {
			return dropPartition(tx, oldCollectionName)
		}
		return nil
	})

	return translateUniqueViolation(err)
}

// DeleteTenant drops the partition, removes every administrator of the
// organization and finally the organization record itself. Partition and
// admins go first so a crash mid-sequence leaves a visible dangling
// organization rather than an ownerless partition.
func (r *TenantRepository) DeleteTenant(org *models.Organization) (bool, error) {
	if err := validatePartitionName(org.CollectionName); err != nil {
		return false, err
	}

	var removed bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := dropPartition(tx, org.CollectionName); err != nil {
			return err
		}

		if err := tx.Where("organization_name = ?", org.OrganizationName).Delete(&models.Admin{}).Error; err != nil {
			return err
		}

		res := tx.Where("organization_name = ?", org.OrganizationName).Delete(&models.Organization{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// PartitionExists reports whether the partition table is present
func (r *TenantRepository) PartitionExists(collectionName string) (bool, error) {
	if err := validatePartitionName(collectionName); err != nil {
		return false, err
	}
	var exists bool
	err := r.db.Raw(
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?)`,
		collectionName,
	).Scan(&exists).Error
	return exists, err
}

// PartitionDocumentCount returns the number of documents in the partition
func (r *TenantRepository) PartitionDocumentCount(collectionName string) (int64, error) {
	if err := validatePartitionName(collectionName); err != nil {
		return 0, err
	}
	var count int64
	err := r.db.Raw(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, collectionName)).Scan(&count).Error
	return count, err
}

func validatePartitionName(name string) error {
	if !validPartitionName.MatchString(name) {
		return apperrors.NewValidationError("collection_name", fmt.Sprintf("invalid partition identifier %q", name))
	}
	return nil
}

func createPartition(tx *gorm.DB, name string) error {
	return tx.Exec(fmt.Sprintf(
		`CREATE TABLE %q (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			doc jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, name,
	)).Error
}

func dropPartition(tx *gorm.DB, name string) error {
	return tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, name)).Error
}

func copyPartition(tx *gorm.DB, from, to string) error {
	return tx.Exec(fmt.Sprintf(
		`INSERT INTO %q (id, doc, created_at) SELECT id, doc, created_at FROM %q`, to, from,
	)).Error
}

func seedPartitionMetadata(tx *gorm.DB, name, organizationName string) error {
	doc, err := json.Marshal(map[string]interface{}{
		"type":              "metadata",
		"organization_name": organizationName,
		"initialized_at":    time.Now().UTC().Format(time.RFC3339Nano),
		"description":       "Organization data collection",
	})
	if err != nil {
		return err
	}
	return tx.Exec(fmt.Sprintf(`INSERT INTO %q (doc) VALUES (?)`, name), string(doc)).Error
}

// translateUniqueViolation maps the unique-index backstop onto the typed
// AlreadyExists errors. The application-level pre-checks give the friendly
// error in the common case; the index is the actual invariant guardian under
// concurrent creates.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.TableName {
		case "admins":
			return apperrors.ErrAdminExists
		default:
			return apperrors.ErrOrganizationExists
		}
	}
	return err
}
