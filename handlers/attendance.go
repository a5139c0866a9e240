// attendance.go - Attendance lifecycle: mark, check-in/out, list, report
//
// One attendance record exists per (student, date, session) slot, enforced
// both by an application-level check and by the composite unique index,
// which is what settles concurrent marks.

package handlers

import (
	"net/http"
	"time"

	"go-attendance-backend/database"
	"go-attendance-backend/models"

	"github.com/gin-gonic/gin"
)

const (
	attendancePageSize = 20
	dateLayout         = "2006-01-02"
	timeLayout         = "15:04:05"
)

type MarkAttendanceInput struct {
	StudentID      uint    `json:"student_id" binding:"required"`
	AttendanceDate string  `json:"attendance_date" binding:"required"`
	CheckInTime    *string `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time"`
	Status         string  `json:"status" binding:"required,oneof=present absent late excused"`
	Notes          string  `json:"notes" binding:"omitempty,max=500"`
	SessionType    string  `json:"session_type" binding:"omitempty,max=50"`
}

type UpdateAttendanceInput struct {
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       *string `json:"status" binding:"omitempty,oneof=present absent late excused"`
	Notes        *string `json:"notes" binding:"omitempty,max=500"`
}

type CheckInOutInput struct {
	StudentID   uint   `json:"student_id" binding:"required"`
	SessionType string `json:"session_type" binding:"omitempty,max=50"`
}

type ListAttendanceQuery struct {
	Date      string `form:"date"`
	Status    string `form:"status"`
	StudentID uint   `form:"student_id"`
}

type ReportQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	StudentID uint   `form:"student_id"`
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}

// studentExists verifies a student id before attaching records to it.
func studentExists(id uint) bool {
	var count int64
	database.DB.Model(&models.Student{}).Where("id = ?", id).Count(&count)
	return count > 0
}

// checkOutAfterCheckIn validates the time ordering when both sides are set.
// HH:MM:SS strings are fixed width, so plain string comparison is correct.
func checkOutAfterCheckIn(checkIn, checkOut *string) bool {
	if checkIn == nil || checkOut == nil {
		return true
	}
	return *checkOut > *checkIn
}

// ListAttendance returns a filtered page ordered by date, newest first.
func ListAttendance(c *gin.Context) {
	var q ListAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, err)
		return
	}

	query := database.DB.Model(&models.Attendance{}).Preload("Student.User")
	if q.Date != "" {
		query = query.Where("attendance_date = ?", q.Date)
	}
	if q.Status != "" {
		if !models.ValidStatus(q.Status) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The selected status is invalid."})
			return
		}
		query = query.Where("status = ?", q.Status)
	}
	if q.StudentID != 0 {
		query = query.Where("student_id = ?", q.StudentID)
	}
	query = query.Order("attendance_date DESC").Order("created_at DESC")

	var records []models.Attendance
	page, err := paginate(c, query, attendancePageSize, &records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// MarkAttendance creates a record for a (student, date, session) slot.
// Marking an already-marked slot is a conflict, never an overwrite.
func MarkAttendance(c *gin.Context) {
	var input MarkAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}
	if !validDate(input.AttendanceDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The attendance date is not a valid date."})
		return
	}
	if input.CheckInTime != nil && !validTime(*input.CheckInTime) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The check in time does not match the format H:i:s."})
		return
	}
	if input.CheckOutTime != nil && !validTime(*input.CheckOutTime) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The check out time does not match the format H:i:s."})
		return
	}
	if !checkOutAfterCheckIn(input.CheckInTime, input.CheckOutTime) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The check out time must be a date after check in time."})
		return
	}
	if !studentExists(input.StudentID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The selected student id is invalid."})
		return
	}

	// Friendly duplicate check first; the unique index is the backstop
	// for two marks racing past it.
	var count int64
	database.DB.Model(&models.Attendance{}).
		Where("student_id = ? AND attendance_date = ? AND session_type = ?",
			input.StudentID, input.AttendanceDate, input.SessionType).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Attendance already marked for this student on this date and session"})
		return
	}

	attendance := models.Attendance{
		StudentID:      input.StudentID,
		AttendanceDate: input.AttendanceDate,
		CheckInTime:    input.CheckInTime,
		CheckOutTime:   input.CheckOutTime,
		Status:         input.Status,
		Notes:          input.Notes,
		SessionType:    input.SessionType,
	}
	if err := database.DB.Create(&attendance).Error; err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Attendance already marked for this student on this date and session"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("Student.User").First(&attendance, attendance.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Attendance marked successfully",
		"attendance": attendance,
	})
}

// ShowAttendance returns one record with its student and user loaded.
func ShowAttendance(c *gin.Context) {
	var attendance models.Attendance
	if err := database.DB.Preload("Student.User").
		First(&attendance, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
		return
	}
	c.JSON(http.StatusOK, attendance)
}

// UpdateAttendance partially updates times, status and notes, re-checking
// the check-out-after-check-in ordering on the merged record.
func UpdateAttendance(c *gin.Context) {
	var attendance models.Attendance
	if err := database.DB.First(&attendance, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
		return
	}

	var input UpdateAttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}
	if input.CheckInTime != nil && !validTime(*input.CheckInTime) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The check in time does not match the format H:i:s."})
		return
	}
	if input.CheckOutTime != nil && !validTime(*input.CheckOutTime) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The check out time does not match the format H:i:s."})
		return
	}

	// Ordering must hold on the record as it would be after the update
	mergedIn := attendance.CheckInTime
	if input.CheckInTime != nil {
		mergedIn = input.CheckInTime
	}
	mergedOut := attendance.CheckOutTime
	if input.CheckOutTime != nil {
		mergedOut = input.CheckOutTime
	}
	if !checkOutAfterCheckIn(mergedIn, mergedOut) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The check out time must be a date after check in time."})
		return
	}

	updates := map[string]interface{}{}
	if input.CheckInTime != nil {
		updates["check_in_time"] = *input.CheckInTime
	}
	if input.CheckOutTime != nil {
		updates["check_out_time"] = *input.CheckOutTime
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&attendance).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	}

	database.DB.Preload("Student.User").First(&attendance, attendance.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Attendance updated successfully",
		"attendance": attendance,
	})
}

// DeleteAttendance removes one record unconditionally.
func DeleteAttendance(c *gin.Context) {
	var attendance models.Attendance
	if err := database.DB.First(&attendance, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Attendance record not found"})
		return
	}
	if err := database.DB.Delete(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted successfully"})
}

// CheckIn upserts today's slot: a missing record is created as present, an
// existing one has its check-in time overwritten and its status forced to
// present, whatever it was before.
func CheckIn(c *gin.Context) {
	var input CheckInOutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}
	if !studentExists(input.StudentID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The selected student id is invalid."})
		return
	}

	now := time.Now()
	today := now.Format(dateLayout)
	currentTime := now.Format(timeLayout)

	var attendance models.Attendance
	err := database.DB.
		Where("student_id = ? AND attendance_date = ? AND session_type = ?",
			input.StudentID, today, input.SessionType).
		First(&attendance).Error
	if err == nil {
		// Existing slot: overwrite the check-in and force present
		if err := database.DB.Model(&attendance).Updates(map[string]interface{}{
			"check_in_time": currentTime,
			"status":        models.StatusPresent,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	} else {
		attendance = models.Attendance{
			StudentID:      input.StudentID,
			AttendanceDate: today,
			CheckInTime:    &currentTime,
			Status:         models.StatusPresent,
			SessionType:    input.SessionType,
		}
		if err := database.DB.Create(&attendance).Error; err != nil {
			if database.IsDuplicateKey(err) {
				// Lost the race to a concurrent check-in; update that row
				database.DB.
					Where("student_id = ? AND attendance_date = ? AND session_type = ?",
						input.StudentID, today, input.SessionType).
					First(&attendance)
				database.DB.Model(&attendance).Updates(map[string]interface{}{
					"check_in_time": currentTime,
					"status":        models.StatusPresent,
				})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				return
			}
		}
	}

	database.DB.Preload("Student.User").First(&attendance, attendance.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Check-in recorded successfully",
		"attendance": attendance,
	})
}

// CheckOut stamps the check-out time on today's slot. Status is untouched.
func CheckOut(c *gin.Context) {
	var input CheckInOutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}
	if !studentExists(input.StudentID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The selected student id is invalid."})
		return
	}

	now := time.Now()
	today := now.Format(dateLayout)
	currentTime := now.Format(timeLayout)

	var attendance models.Attendance
	err := database.DB.
		Where("student_id = ? AND attendance_date = ? AND session_type = ?",
			input.StudentID, today, input.SessionType).
		First(&attendance).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No check-in record found for today"})
		return
	}

	if err := database.DB.Model(&attendance).Update("check_out_time", currentTime).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("Student.User").First(&attendance, attendance.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Check-out recorded successfully",
		"attendance": attendance,
	})
}

// AttendanceReport returns all records in an inclusive date range together
// with a per-status summary.
func AttendanceReport(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, err)
		return
	}
	if !validDate(q.StartDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The start date is not a valid date."})
		return
	}
	if !validDate(q.EndDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The end date is not a valid date."})
		return
	}
	if q.EndDate < q.StartDate {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The end date must be a date after or equal to start date."})
		return
	}
	if q.StudentID != 0 && !studentExists(q.StudentID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The selected student id is invalid."})
		return
	}

	query := database.DB.Preload("Student.User").
		Where("attendance_date BETWEEN ? AND ?", q.StartDate, q.EndDate)
	if q.StudentID != 0 {
		query = query.Where("student_id = ?", q.StudentID)
	}

	var records []models.Attendance
	if err := query.Order("attendance_date DESC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	summary := gin.H{
		"total_records": len(records),
		"present":       countStatus(records, models.StatusPresent),
		"absent":        countStatus(records, models.StatusAbsent),
		"late":          countStatus(records, models.StatusLate),
		"excused":       countStatus(records, models.StatusExcused),
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"summary":    summary,
		"period": gin.H{
			"start_date": q.StartDate,
			"end_date":   q.EndDate,
		},
	})
}

func countStatus(records []models.Attendance, status string) int {
	n := 0
	for _, r := range records {
		if r.Status == status {
			n++
		}
	}
	return n
}
