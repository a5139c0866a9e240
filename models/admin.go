// admin.go - Defines the Admin profile model (one-to-one with User)

package models

import "time"

type Admin struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmailUM6P  string    `gorm:"column:email_um6p;unique;not null" json:"email_um6p"`
	Department string    `gorm:"not null" json:"department"`
	Program    string    `gorm:"not null" json:"program"`
	UserID     uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
