// student.go - Defines the Student profile model (one-to-one with User)

package models

import "time"

type Student struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Three independently unique identifiers per student.
	EmailUM6P             string `gorm:"column:email_um6p;unique;not null" json:"email_um6p"`
	HealthInsuranceNumber string `gorm:"unique;not null" json:"health_insurance_number"`
	CIN                   string `gorm:"column:cin;unique;not null" json:"cin"` // National ID

	Age           int     `gorm:"not null" json:"age"`                            // Bounds 16-50, enforced at validation
	DateNaissance *string `gorm:"column:date_naissance" json:"date_naissance"`    // Optional birth date (YYYY-MM-DD)
	Ville         string  `gorm:"not null" json:"ville"`
	Etudes        string  `gorm:"not null" json:"etudes"`
	Telephone     string  `gorm:"not null" json:"telephone"`

	UserID uint  `gorm:"not null;uniqueIndex" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	// Attendance history; rows are removed together with the student.
	Attendances []Attendance `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"attendances,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
