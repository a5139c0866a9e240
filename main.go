// main.go - Entry point for the attendance backend server

package main

import (
	"log"

	"go-attendance-backend/config"     // Project config management
	"go-attendance-backend/database"   // Database connection and setup
	"go-attendance-backend/handlers"   // HTTP handlers for API endpoints
	"go-attendance-backend/middleware" // Middleware (authentication)

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// STEP 1: Load configuration and connect to the database
	_ = godotenv.Load() // .env is optional; real env vars win either way
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatal("DB connection error: ", err)
	}

	// STEP 2: Create Gin router and configure routes
	r := gin.Default()

	// Public route (no authentication required)
	r.POST("/api/login", handlers.Login)

	// Everything else requires a valid bearer token
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Session and profile
		api.POST("/logout", handlers.Logout)
		api.GET("/profile", handlers.Profile)
		api.PUT("/profile", handlers.UpdateProfile)
		api.POST("/change-password", handlers.ChangePassword)
		api.POST("/register", handlers.Register) // Gated on manage_users inside the handler

		// Admin profiles
		api.GET("/admins", handlers.ListAdmins)
		api.POST("/admins", handlers.CreateAdmin)
		api.GET("/admins/:id", handlers.ShowAdmin)
		api.GET("/admins/:id/edit", handlers.EditAdmin)
		api.PUT("/admins/:id", handlers.UpdateAdmin)
		api.DELETE("/admins/:id", handlers.DeleteAdmin)

		// Student profiles
		api.GET("/students", handlers.ListStudents)
		api.POST("/students", handlers.CreateStudent)
		api.GET("/students/:id", handlers.ShowStudent)
		api.GET("/students/:id/edit", handlers.EditStudent)
		api.PUT("/students/:id", handlers.UpdateStudent)
		api.DELETE("/students/:id", handlers.DeleteStudent)

		// Attendance lifecycle
		api.GET("/attendance", handlers.ListAttendance)
		api.POST("/attendance", handlers.MarkAttendance)
		api.POST("/attendance/check-in", handlers.CheckIn)
		api.POST("/attendance/check-out", handlers.CheckOut)
		api.GET("/attendance/report", handlers.AttendanceReport)
		api.GET("/attendance/:id", handlers.ShowAttendance)
		api.PUT("/attendance/:id", handlers.UpdateAttendance)
		api.DELETE("/attendance/:id", handlers.DeleteAttendance)
	}

	// STEP 3: Start the web server
	r.Run(":" + cfg.Port)
}
