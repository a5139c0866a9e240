// user.go - Defines the User model, the authenticable account

package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"` // Login email (globally unique)
	Password string `gorm:"not null" json:"-"`            // bcrypt hash, never serialized
	RoleID   uint   `gorm:"not null" json:"role_id"`
	Role     *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	// At most one profile of each kind is attached to a user.
	Student *Student `gorm:"foreignKey:UserID" json:"student,omitempty"`
	Admin   *Admin   `gorm:"foreignKey:UserID" json:"admin,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether the user's role is of the given type.
func (u *User) HasRole(roleType string) bool {
	return u.Role != nil && u.Role.Type == roleType
}

// HasPermission reports whether the user's role grants the given permission.
func (u *User) HasPermission(permission string) bool {
	return u.Role != nil && u.Role.HasPermission(permission)
}
