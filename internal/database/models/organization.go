package models

import (
	"regexp"
	"strings"
)

// Organization is the master record for one tenant. CollectionName is the
// identifier of the tenant's dynamically named data partition table.
type Organization struct {
	BaseModel
	OrganizationName string `json:"organization_name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	CollectionName   string `json:"collection_name" gorm:"not null;size:120"`
	AdminEmail       string `json:"admin_email" gorm:"not null;size:255" validate:"required,email"`

	// Relationships
	Admins []Admin `json:"admins,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// DeriveCollectionName maps an organization name to its partition identifier:
// lowercase the name, replace every character outside [a-z0-9] with '_' and
// prefix with "org_". Deterministic; distinct names may collide (e.g.
// "Tech-Corp" and "Tech_Corp" both map to "org_tech_corp").
func DeriveCollectionName(organizationName string) string {
	clean := nonAlphanumeric.ReplaceAllString(strings.ToLower(organizationName), "_")
	return "org_" + clean
}
