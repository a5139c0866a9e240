// admin_test.go - Tests for admin profile CRUD and user provisioning

package handlers

import (
	"fmt"
	"testing"

	"go-attendance-backend/database"
	"go-attendance-backend/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateAdminProvisionsUser(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	w := doRequest(router, "POST", "/api/admins", token, map[string]string{
		"name":       "Wafae Labib",
		"email_um6p": "wafae@um6p.ma",
		"department": "Cultur.Ed",
		"program":    "INSPIRE",
	})
	assert.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Admin created successfully", body["message"])
	created := body["admin"].(map[string]interface{})
	assert.NotNil(t, created["user"])

	// A paired user exists with the admin role and the default password
	var admin models.Admin
	assert.NoError(t, database.DB.Preload("User.Role").First(&admin, "email_um6p = ?", "wafae@um6p.ma").Error)
	assert.Equal(t, "Wafae Labib", admin.User.Name)
	assert.Equal(t, "wafae@um6p.ma", admin.User.Email)
	assert.Equal(t, models.RoleAdmin, admin.User.Role.Type)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.User.Password), []byte("password123")))
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	payload := map[string]string{
		"name":       "Wafae Labib",
		"email_um6p": "wafae@um6p.ma",
		"department": "Cultur.Ed",
		"program":    "INSPIRE",
	}
	w := doRequest(router, "POST", "/api/admins", token, payload)
	assert.Equal(t, 201, w.Code)

	w = doRequest(router, "POST", "/api/admins", token, payload)
	assert.Equal(t, 422, w.Code)
	assert.Equal(t, "The email um6p has already been taken.", decodeBody(t, w)["message"])
}

func TestUpdateAdminPropagatesToUser(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	w := doRequest(router, "POST", "/api/admins", token, map[string]string{
		"name":       "Old Name",
		"email_um6p": "old@um6p.ma",
		"department": "Cultur.Ed",
		"program":    "INSPIRE",
	})
	assert.Equal(t, 201, w.Code)
	adminID := decodeBody(t, w)["admin"].(map[string]interface{})["id"].(float64)

	w = doRequest(router, "PUT", fmt.Sprintf("/api/admins/%.0f", adminID), token, map[string]string{
		"name":       "New Name",
		"email_um6p": "new@um6p.ma",
		"department": "STEM",
	})
	assert.Equal(t, 200, w.Code)

	var admin models.Admin
	database.DB.Preload("User").First(&admin, uint(adminID))
	assert.Equal(t, "new@um6p.ma", admin.EmailUM6P)
	assert.Equal(t, "STEM", admin.Department)
	// The name/email change reached the paired user account
	assert.Equal(t, "New Name", admin.User.Name)
	assert.Equal(t, "new@um6p.ma", admin.User.Email)
}

func TestUpdateAdminEmailUniqueExcludesSelf(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	for _, email := range []string{"first@um6p.ma", "second@um6p.ma"} {
		w := doRequest(router, "POST", "/api/admins", token, map[string]string{
			"name":       "Admin " + email,
			"email_um6p": email,
			"department": "Cultur.Ed",
			"program":    "INSPIRE",
		})
		assert.Equal(t, 201, w.Code)
	}

	var first models.Admin
	database.DB.First(&first, "email_um6p = ?", "first@um6p.ma")

	// Re-submitting its own email is allowed
	w := doRequest(router, "PUT", fmt.Sprintf("/api/admins/%d", first.ID), token, map[string]string{
		"email_um6p": "first@um6p.ma",
	})
	assert.Equal(t, 200, w.Code)

	// Taking the other admin's email is a conflict
	w = doRequest(router, "PUT", fmt.Sprintf("/api/admins/%d", first.ID), token, map[string]string{
		"email_um6p": "second@um6p.ma",
	})
	assert.Equal(t, 422, w.Code)
}

func TestDeleteAdminDeletesPairedUser(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	w := doRequest(router, "POST", "/api/admins", token, map[string]string{
		"name":       "Doomed Admin",
		"email_um6p": "doomed@um6p.ma",
		"department": "Cultur.Ed",
		"program":    "INSPIRE",
	})
	assert.Equal(t, 201, w.Code)

	var admin models.Admin
	database.DB.First(&admin, "email_um6p = ?", "doomed@um6p.ma")
	userID := admin.UserID

	w = doRequest(router, "DELETE", fmt.Sprintf("/api/admins/%d", admin.ID), token, nil)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Admin deleted successfully", decodeBody(t, w)["message"])

	// Both rows are gone
	var count int64
	database.DB.Model(&models.Admin{}).Where("id = ?", admin.ID).Count(&count)
	assert.Equal(t, int64(0), count)
	database.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestShowAdminNotFound(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	w := doRequest(router, "GET", "/api/admins/9999", token, nil)
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "Admin not found", decodeBody(t, w)["message"])
}

func TestListAdminsPagination(t *testing.T) {
	setupTestDB(t, "test_admin.db")
	router := setupRouter()
	caller := createUser(t, "Super One", "super@test.com", "secretpass", models.RoleSuperAdmin)
	token := authToken(t, caller)

	for i := 0; i < 17; i++ {
		w := doRequest(router, "POST", "/api/admins", token, map[string]string{
			"name":       fmt.Sprintf("Admin %02d", i),
			"email_um6p": fmt.Sprintf("admin%02d@um6p.ma", i),
			"department": "Cultur.Ed",
			"program":    "INSPIRE",
		})
		assert.Equal(t, 201, w.Code)
	}

	w := doRequest(router, "GET", "/api/admins", token, nil)
	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["current_page"])
	assert.Equal(t, float64(15), body["per_page"])
	assert.Equal(t, float64(17), body["total"])
	assert.Equal(t, float64(2), body["last_page"])
	assert.Len(t, body["data"], 15)

	w = doRequest(router, "GET", "/api/admins?page=2", token, nil)
	body = decodeBody(t, w)
	assert.Equal(t, float64(2), body["current_page"])
	assert.Len(t, body["data"], 2)
}
