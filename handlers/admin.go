// admin.go - CRUD over admin profiles, each paired with a user account

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

const adminPageSize = 15

type CreateAdminInput struct {
	Name       string `json:"name" binding:"required,max=255"`
	EmailUM6P  string `json:"email_um6p" binding:"required,email"`
	Department string `json:"department" binding:"required,max=255"`
	Program    string `json:"program" binding:"required,max=255"`
}

type UpdateAdminInput struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	EmailUM6P  *string `json:"email_um6p" binding:"omitempty,email"`
	Department *string `json:"department" binding:"omitempty,max=255"`
	Program    *string `json:"program" binding:"omitempty,max=255"`
}

// findAdmin resolves the :id route parameter or writes a 404.
func findAdmin(c *gin.Context) (*models.Admin, bool) {
	var admin models.Admin
	if err := database.DB.Preload("User").First(&admin, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
		return nil, false
	}
	return &admin, true
}

// ListAdmins returns a page of admin profiles with their users loaded.
func ListAdmins(c *gin.Context) {
	var admins []models.Admin
	query := database.DB.Model(&models.Admin{}).Preload("User")
	page, err := paginate(c, query, adminPageSize, &admins)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateAdmin provisions a user account with the default password and the
// admin role, then the admin profile referencing it. Both rows go in inside
// one transaction so a failed profile insert never leaves an orphaned user.
func CreateAdmin(c *gin.Context) {
	var input CreateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	var count int64
	database.DB.Model(&models.Admin{}).Where("email_um6p = ?", input.EmailUM6P).Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
		return
	}

	var role models.Role
	if err := database.DB.Where("type = ?", models.RoleAdmin).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Admin role is not configured"})
		return
	}

	cfg := config.Load()
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	var admin models.Admin
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
		admin = models.Admin{
			EmailUM6P:  input.EmailUM6P,
			Department: input.Department,
			Program:    input.Program,
			UserID:     user.ID,
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("User").First(&admin, admin.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}

// ShowAdmin returns one admin with its user loaded.
func ShowAdmin(c *gin.Context) {
	admin, ok := findAdmin(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, admin)
}

// EditAdmin serves the record for an edit form. Same payload as ShowAdmin.
func EditAdmin(c *gin.Context) {
	ShowAdmin(c)
}

// UpdateAdmin partially updates an admin. A name or email change is
// propagated to the paired user account.
func UpdateAdmin(c *gin.Context) {
	admin, ok := findAdmin(c)
	if !ok {
		return
	}

	var input UpdateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	if input.EmailUM6P != nil {
		// Unique across admins, excluding this record
		var count int64
		database.DB.Model(&models.Admin{}).
			Where("email_um6p = ? AND id <> ?", *input.EmailUM6P, admin.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
			return
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Keep the paired user in sync with name/email changes
		if input.Name != nil || input.EmailUM6P != nil {
			userUpdates := map[string]interface{}{}
			if input.Name != nil {
				userUpdates["name"] = *input.Name
			}
			if input.EmailUM6P != nil {
				userUpdates["email"] = *input.EmailUM6P
			}
			if err := tx.Model(&models.User{}).Where("id = ?", admin.UserID).
				Updates(userUpdates).Error; err != nil {
				return err
			}
		}

		adminUpdates := map[string]interface{}{}
		if input.EmailUM6P != nil {
			adminUpdates["email_um6p"] = *input.EmailUM6P
		}
		if input.Department != nil {
			adminUpdates["department"] = *input.Department
		}
		if input.Program != nil {
			adminUpdates["program"] = *input.Program
		}
		if len(adminUpdates) == 0 {
			return nil
		}
		return tx.Model(admin).Updates(adminUpdates).Error
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email um6p has already been taken."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("User").First(admin, admin.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Admin updated successfully",
		"admin":   admin,
	})
}

// DeleteAdmin removes the admin profile together with its user account.
// Rows are deleted in FK order inside one transaction.
func DeleteAdmin(c *gin.Context) {
	admin, ok := findAdmin(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", admin.UserID).Delete(&models.AccessToken{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Admin{}, admin.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, admin.UserID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}
