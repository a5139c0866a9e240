// attendance.go - Defines the Attendance model, one record per student/date/session slot

package models

import "time"

// Attendance statuses. A slot with no record counts as absent.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

type Attendance struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	StudentID uint     `gorm:"not null;uniqueIndex:idx_attendance_slot" json:"student_id"`
	Student   *Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`

	// Stored as YYYY-MM-DD so date ordering and BETWEEN filters work as
	// plain string comparisons on every driver.
	AttendanceDate string `gorm:"not null;uniqueIndex:idx_attendance_slot" json:"attendance_date"`

	CheckInTime  *string `json:"check_in_time"`  // HH:MM:SS, nil until checked in
	CheckOutTime *string `json:"check_out_time"` // HH:MM:SS, must be after check-in
	Status       string  `gorm:"not null;default:'absent'" json:"status"`
	Notes        string  `json:"notes"`

	// Session label ("morning", "afternoon", ...). Normalized to "" instead
	// of NULL so the composite unique index covers sessionless slots too.
	SessionType string `gorm:"not null;default:'';uniqueIndex:idx_attendance_slot" json:"session_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the singular table name used by the original schema.
func (Attendance) TableName() string {
	return "attendance"
}

// ValidStatus reports whether s is one of the four attendance statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusExcused:
		return true
	}
	return false
}
