package models

import (
	"github.com/google/uuid"
)

// Admin is an administrator account. Email uniqueness is global, not
// per-tenant. OrganizationName is the ownership link checked on every
// mutating tenant operation.
type Admin struct {
	BaseModel
	Email            string     `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	HashedPassword   string     `json:"-" gorm:"not null;size:255"`
	OrganizationName string     `json:"organization_name" gorm:"not null;size:100;index"`
	OrganizationID   *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	IsActive         bool       `json:"is_active" gorm:"not null;default:true"`
}

// TableName returns the table name for Admin
func (Admin) TableName() string {
	return "admins"
}
