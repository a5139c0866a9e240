// database.go - Handles database connection, migrations and seeding

package database

import (
	"go-attendance-backend/config" // Project config
	"go-attendance-backend/models" // Domain models

	"gorm.io/driver/postgres" // Postgres driver for GORM
	"gorm.io/driver/sqlite"   // SQLite driver for GORM
	"gorm.io/gorm"            // GORM ORM
)

var DB *gorm.DB // Global variable to hold the database connection

// Connect opens the database, runs migrations and seeds the role table.
// Postgres is used when DATABASE_URL is set, otherwise a local SQLite file.
func Connect(cfg *config.Config) error {
	var err error
	if cfg.DatabaseURL != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	} else {
		// _foreign_keys=on so SQLite enforces the declared FK constraints
		DB, err = gorm.Open(sqlite.Open(cfg.DBPath+"?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	}
	if err != nil {
		return err
	}

	// Migrate in FK order: roles before users, users before profiles,
	// students before attendance.
	if err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Admin{},
		&models.Student{},
		&models.Attendance{},
		&models.AccessToken{},
	); err != nil {
		return err
	}

	// Roles are required by every provisioning path, so they are always seeded.
	if err := SeedRoles(DB); err != nil {
		return err
	}

	// Initial admin accounts are opt-in (SEED_ADMINS=true).
	if cfg.SeedAdmins {
		if err := SeedAdmins(DB, cfg.DefaultPassword); err != nil {
			return err
		}
	}

	return nil
}
