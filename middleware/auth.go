// auth.go - Bearer-token authentication middleware
//
// A bearer token is a signed JWT carrying the issuing user's ID and a
// per-token UUID. The token is accepted only while its access_tokens row
// still exists, so logging out one token never touches the others issued
// to the same user.

package middleware

import (
	"net/http" // HTTP status codes (401, 403)
	"strings"  // Header parsing
	"time"

	"go-attendance-backend/config"   // Project config (for the signing secret)
	"go-attendance-backend/database" // Database connection
	"go-attendance-backend/models"   // User and AccessToken models

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextUserKey    = "user"     // *models.User with Role preloaded
	ContextTokenIDKey = "token_id" // UUID of the presented token
)

// AuthMiddleware validates the Authorization header and loads the
// authenticated user (with role) into the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// STEP 1: Extract the bearer token from the Authorization header
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		// STEP 2: Verify the signature and expiry
		cfg := config.Load()
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}
		tokenID, _ := claims["token_id"].(string)
		userID, okID := claims["user_id"].(float64) // JWT numbers decode as float64
		if tokenID == "" || !okID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}

		// STEP 3: The token must still exist in the store (i.e. not revoked)
		var accessToken models.AccessToken
		if err := database.DB.Where("token_id = ? AND user_id = ?", tokenID, uint(userID)).
			First(&accessToken).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}

		// STEP 4: Load the user with its role for permission checks
		var user models.User
		if err := database.DB.Preload("Role").First(&user, accessToken.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
			return
		}

		now := time.Now()
		database.DB.Model(&accessToken).Update("last_used_at", &now)

		c.Set(ContextUserKey, &user)
		c.Set(ContextTokenIDKey, tokenID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
