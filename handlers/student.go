// student.go - CRUD over student profiles, each paired with a user account

package handlers

import (
	"net/http"

	"go-attendance-backend/config"
	"go-attendance-backend/database"
	"go-attendance-backend/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const studentPageSize = 15

type CreateStudentInput struct {
	Name                  string  `json:"name" binding:"required,max=255"`
	EmailUM6P             string  `json:"email_um6p" binding:"required,email"`
	HealthInsuranceNumber string  `json:"health_insurance_number" binding:"required"`
	CIN                   string  `json:"cin" binding:"required"`
	Age                   int     `json:"age" binding:"required,gte=16,lte=50"`
	DateNaissance         *string `json:"date_naissance"`
	Ville                 string  `json:"ville" binding:"required,max=255"`
	Etudes                string  `json:"etudes" binding:"required,max=255"`
	Telephone             string  `json:"telephone" binding:"required,max=20"`
}

type UpdateStudentInput struct {
	Name                  *string `json:"name" binding:"omitempty,max=255"`
	EmailUM6P             *string `json:"email_um6p" binding:"omitempty,email"`
	HealthInsuranceNumber *string `json:"health_insurance_number"`
	CIN                   *string `json:"cin"`
	Age                   *int    `json:"age" binding:"omitempty,gte=16,lte=50"`
	DateNaissance         *string `json:"date_naissance"`
	Ville                 *string `json:"ville" binding:"omitempty,max=255"`
	Etudes                *string `json:"etudes" binding:"omitempty,max=255"`
	Telephone             *string `json:"telephone" binding:"omitempty,max=20"`
}

// findStudent resolves the :id route parameter or writes a 404.
func findStudent(c *gin.Context) (*models.Student, bool) {
	var student models.Student
	if err := database.DB.Preload("User").First(&student, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student not found"})
		return nil, false
	}
	return &student, true
}

// studentFieldTaken checks one of the unique student columns, excluding the
// record with excludeID (0 for creation).
func studentFieldTaken(column, value string, excludeID uint) bool {
	var count int64
	database.DB.Model(&models.Student{}).
		Where(column+" = ? AND id <> ?", value, excludeID).
		Count(&count)
	return count > 0
}

// ListStudents returns a page of student profiles with their users loaded.
func ListStudents(c *gin.Context) {
	var students []models.Student
	query := database.DB.Model(&models.Student{}).Preload("User")
	page, err := paginate(c, query, studentPageSize, &students)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateStudent provisions a user account with the default password and the
// student role, then the student profile referencing it, inside one
// transaction.
func CreateStudent(c *gin.Context) {
	var input CreateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}
	if input.DateNaissance != nil && !validDate(*input.DateNaissance) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The date naissance is not a valid date."})
		return
	}

	// Each of the three identifiers is unique system-wide
	if studentFieldTaken("email_um6p", input.EmailUM6P, 0) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
		return
	}
	if studentFieldTaken("health_insurance_number", input.HealthInsuranceNumber, 0) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The health insurance number has already been taken."})
		return
	}
	if studentFieldTaken("cin", input.CIN, 0) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The cin has already been taken."})
		return
	}

	var role models.Role
	if err := database.DB.Where("type = ?", models.RoleStudent).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Student role is not configured"})
		return
	}

	cfg := config.Load()
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var student models.Student
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:     input.Name,
			Email:    input.EmailUM6P,
			Password: string(hash),
			RoleID:   role.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		student = models.Student{
			EmailUM6P:             input.EmailUM6P,
			HealthInsuranceNumber: input.HealthInsuranceNumber,
			CIN:                   input.CIN,
			Age:                   input.Age,
			DateNaissance:         input.DateNaissance,
			Ville:                 input.Ville,
			Etudes:                input.Etudes,
			Telephone:             input.Telephone,
			UserID:                user.ID,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("User").First(&student, student.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Student created successfully",
		"student": student,
	})
}

// ShowStudent returns one student with user and attendance history loaded.
func ShowStudent(c *gin.Context) {
	var student models.Student
	if err := database.DB.Preload("User").Preload("Attendances").
		First(&student, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// EditStudent serves the record for an edit form (user loaded, no history).
func EditStudent(c *gin.Context) {
	student, ok := findStudent(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, student)
}

// UpdateStudent partially updates a student. Name or email changes are
// propagated to the paired user account.
func UpdateStudent(c *gin.Context) {
	student, ok := findStudent(c)
	if !ok {
		return
	}

	var input UpdateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}
	if input.DateNaissance != nil && !validDate(*input.DateNaissance) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The date naissance is not a valid date."})
		return
	}

	if input.EmailUM6P != nil && studentFieldTaken("email_um6p", *input.EmailUM6P, student.ID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
		return
	}
	if input.HealthInsuranceNumber != nil && studentFieldTaken("health_insurance_number", *input.HealthInsuranceNumber, student.ID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The health insurance number has already been taken."})
		return
	}
	if input.CIN != nil && studentFieldTaken("cin", *input.CIN, student.ID) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The cin has already been taken."})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if input.Name != nil || input.EmailUM6P != nil {
			userUpdates := map[string]interface{}{}
			if input.Name != nil {
				userUpdates["name"] = *input.Name
			}
			if input.EmailUM6P != nil {
				userUpdates["email"] = *input.EmailUM6P
			}
			if err := tx.Model(&models.User{}).Where("id = ?", student.UserID).
				Updates(userUpdates).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if input.EmailUM6P != nil {
			updates["email_um6p"] = *input.EmailUM6P
		}
		if input.HealthInsuranceNumber != nil {
			updates["health_insurance_number"] = *input.HealthInsuranceNumber
		}
		if input.CIN != nil {
			updates["cin"] = *input.CIN
		}
		if input.Age != nil {
			updates["age"] = *input.Age
		}
		if input.DateNaissance != nil {
			updates["date_naissance"] = *input.DateNaissance
		}
		if input.Ville != nil {
			updates["ville"] = *input.Ville
		}
		if input.Etudes != nil {
			updates["etudes"] = *input.Etudes
		}
		if input.Telephone != nil {
			updates["telephone"] = *input.Telephone
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(student).Updates(updates).Error
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("User").First(student, student.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Student updated successfully",
		"student": student,
	})
}

// DeleteStudent removes the student, its attendance history and its user
// account in FK order inside one transaction.
func DeleteStudent(c *gin.Context) {
	student, ok := findStudent(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", student.UserID).Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Student{}, student.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, student.UserID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}
