// role.go - Defines the Role model (permission bundle assigned to users)

package models

import (
	"encoding/json"
	"time"
)

// Role types seeded at setup. The type column is unique, so each
// role exists exactly once.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStudent    = "student"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"unique;not null" json:"type"`     // admin / super_admin / student
	DisplayName string    `gorm:"not null" json:"display_name"`    // Human-readable name
	Description string    `json:"description"`                     // What the role is for
	Permissions string    `gorm:"type:text" json:"permissions"`    // JSON-encoded list of permission strings
	IsActive    bool      `gorm:"default:true" json:"is_active"`   // Inactive roles grant nothing
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PermissionList decodes the stored JSON permission array.
func (r *Role) PermissionList() []string {
	var perms []string
	if err := json.Unmarshal([]byte(r.Permissions), &perms); err != nil {
		return nil
	}
	return perms
}

// SetPermissions encodes a permission list into the stored column.
func (r *Role) SetPermissions(perms []string) {
	data, _ := json.Marshal(perms)
	r.Permissions = string(data)
}

// HasPermission reports whether this role grants the given permission.
// Inactive roles grant nothing.
func (r *Role) HasPermission(permission string) bool {
	if !r.IsActive {
		return false
	}
	for _, p := range r.PermissionList() {
		if p == permission {
			return true
		}
	}
	return false
}
