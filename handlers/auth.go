// auth.go - Handles login, logout, profile management and user registration

package handlers

import (
	"net/http"
	"time"

	"go-attendance-backend/config"     // Project config (signing secret, defaults)
	"go-attendance-backend/database"   // Database connection
	"go-attendance-backend/middleware" // Authenticated-user accessors
	"go-attendance-backend/models"     // User and AccessToken models

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordInput struct {
	CurrentPassword         string `json:"current_password" binding:"required"`
	NewPassword             string `json:"new_password" binding:"required,min=8"`
	NewPasswordConfirmation string `json:"new_password_confirmation" binding:"required,eqfield=NewPassword"`
}

type RegisterInput struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	RoleID               uint   `json:"role_id" binding:"required"`
}

// IssueToken stores a new access token for user and returns the signed
// bearer string handed to the client. Each call yields an independently
// revocable token.
func IssueToken(user *models.User, name string) (string, error) {
	accessToken := models.AccessToken{
		TokenID: uuid.NewString(),
		UserID:  user.ID,
		Name:    name,
	}
	if err := database.DB.Create(&accessToken).Error; err != nil {
		return "", err
	}

	cfg := config.Load()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": accessToken.TokenID,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(cfg.JWTSecret))
}

// loadUserRelations reloads user with role and both profiles attached.
func loadUserRelations(user *models.User) {
	database.DB.Preload("Role").Preload("Student").Preload("Admin").First(user, user.ID)
}

// Login verifies credentials and issues a bearer token. The failure message
// never says which of the two fields was wrong.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "The provided credentials are incorrect."})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "The provided credentials are incorrect."})
		return
	}

	tokenString, err := IssueToken(&user, "auth-token")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create token"})
		return
	}

	loadUserRelations(&user)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   tokenString,
	})
}

// Logout revokes exactly the presented token. Other tokens issued to the
// same user keep working.
func Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenIDKey)
	database.DB.Where("token_id = ?", tokenID).Delete(&models.AccessToken{})
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Profile returns the authenticated user with role and profiles loaded.
func Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	loadUserRelations(user)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile partially updates name/email of the authenticated user.
func UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		// Unique across users, excluding the current one
		var count int64
		database.DB.Model(&models.User{}).
			Where("email = ? AND id <> ?", *input.Email, user.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email has already been taken."})
			return
		}
		updates["email"] = *input.Email
	}

	if len(updates) > 0 {
		if err := database.DB.Model(user).Updates(updates).Error; err != nil {
			if database.IsDuplicateKey(err) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email has already been taken."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	}

	loadUserRelations(user)
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ChangePassword replaces the stored hash after verifying the current one.
func ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "The current password is incorrect."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if err := database.DB.Model(user).Update("password", string(hash)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Register creates a new user account. Only callers whose role grants
// manage_users may do this.
func Register(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.HasPermission("manage_users") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized to create users"})
		return
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationError(c, err)
		return
	}

	// The assigned role must exist
	var role models.Role
	if err := database.DB.First(&role, input.RoleID).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The selected role id is invalid."})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email has already been taken."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	newUser := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		RoleID:   role.ID,
	}
	if err := database.DB.Create(&newUser).Error; err != nil {
		if database.IsDuplicateKey(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The email has already been taken."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	database.DB.Preload("Role").First(&newUser, newUser.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    newUser,
	})
}
