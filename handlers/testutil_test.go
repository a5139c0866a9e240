// testutil_test.go - Shared helpers for handler tests
// Run with: go test ./...

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go-attendance-backend/config"
	"go-attendance-backend/database"
	"go-attendance-backend/middleware"
	"go-attendance-backend/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// setupTestDB removes any existing test DB file and connects a fresh one.
// Roles are seeded by Connect, so provisioning paths work in every test.
func setupTestDB(t *testing.T, name string) {
	t.Helper()
	_ = os.Remove(name)
	cfg := config.Load()
	cfg.DBPath = name
	if err := database.Connect(cfg); err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(name) })
}

// setupRouter mirrors the route table in main.go.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/api/login", Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/logout", Logout)
		api.GET("/profile", Profile)
		api.PUT("/profile", UpdateProfile)
		api.POST("/change-password", ChangePassword)
		api.POST("/register", Register)

		api.GET("/admins", ListAdmins)
		api.POST("/admins", CreateAdmin)
		api.GET("/admins/:id", ShowAdmin)
		api.GET("/admins/:id/edit", EditAdmin)
		api.PUT("/admins/:id", UpdateAdmin)
		api.DELETE("/admins/:id", DeleteAdmin)

		api.GET("/students", ListStudents)
		api.POST("/students", CreateStudent)
		api.GET("/students/:id", ShowStudent)
		api.GET("/students/:id/edit", EditStudent)
		api.PUT("/students/:id", UpdateStudent)
		api.DELETE("/students/:id", DeleteStudent)

		api.GET("/attendance", ListAttendance)
		api.POST("/attendance", MarkAttendance)
		api.POST("/attendance/check-in", CheckIn)
		api.POST("/attendance/check-out", CheckOut)
		api.GET("/attendance/report", AttendanceReport)
		api.GET("/attendance/:id", ShowAttendance)
		api.PUT("/attendance/:id", UpdateAttendance)
		api.DELETE("/attendance/:id", DeleteAttendance)
	}

	return r
}

// createUser inserts a user with the given role type and returns it.
func createUser(t *testing.T, name, email, password, roleType string) *models.User {
	t.Helper()
	var role models.Role
	if err := database.DB.Where("type = ?", roleType).First(&role).Error; err != nil {
		t.Fatalf("role %s not seeded: %v", roleType, err)
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		RoleID:   role.ID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// authToken issues a bearer token for user.
func authToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := IssueToken(user, "test-token")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doRequest runs one JSON request through the router and records the response.
func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody parses a recorded JSON response into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return body
}

// createTestStudent inserts a student (with paired user) directly and
// returns it, for attendance tests that need one on hand.
func createTestStudent(t *testing.T, cin, email string) *models.Student {
	t.Helper()
	user := createUser(t, cin, email, "password123", models.RoleStudent)
	student := models.Student{
		EmailUM6P:             email,
		HealthInsuranceNumber: "HI-" + cin,
		CIN:                   cin,
		Age:                   22,
		Ville:                 "Benguerir",
		Etudes:                "Computer Science",
		Telephone:             "0600000000",
		UserID:                user.ID,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	return &student
}
