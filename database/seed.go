// seed.go - One-time data population for roles and the initial admin accounts

package database

import (
	"go-attendance-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedRole describes one role to insert at setup.
type seedRole struct {
	Type        string
	DisplayName string
	Description string
	Permissions []string
}

var defaultRoles = []seedRole{
	{
		Type:        models.RoleSuperAdmin,
		DisplayName: "Super Administrator",
		Description: "Highest level administrator with full system access",
		Permissions: []string{
			"manage_users",
			"manage_roles",
			"manage_students",
			"view_all_attendance",
			"manage_system_settings",
			"generate_reports",
		},
	},
	{
		Type:        models.RoleAdmin,
		DisplayName: "Administrator",
		Description: "System administrator with limited privileges",
		Permissions: []string{
			"manage_students",
			"view_attendance",
			"mark_attendance",
			"generate_basic_reports",
		},
	},
	{
		Type:        models.RoleStudent,
		DisplayName: "Student",
		Description: "Student user with basic access",
		Permissions: []string{
			"view_own_attendance",
			"update_own_profile",
		},
	},
}

// SeedRoles inserts the three roles if they are not present yet.
// Safe to run on every startup.
func SeedRoles(db *gorm.DB) error {
	for _, r := range defaultRoles {
		role := models.Role{
			Type:        r.Type,
			DisplayName: r.DisplayName,
			Description: r.Description,
			IsActive:    true,
		}
		role.SetPermissions(r.Permissions)
		if err := db.Where(models.Role{Type: r.Type}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// initialAdmins are the accounts provisioned when SEED_ADMINS is enabled.
var initialAdmins = []struct {
	Name  string
	Email string
}{
	{"Wafae Labib El Idrissi", "wafae.elidrissi@um6p.ma"},
	{"Marya Joudani", "marya.joudani@um6p.ma"},
	{"Taha Mennani", "Taha.mennani@um6p.ma"},
	{"Mamoun Ghallab", "mamoun.ghallab@um6p.ma"},
}

// SeedAdmins creates the initial admin users and their admin profiles with
// the default password. Accounts that already exist are skipped.
func SeedAdmins(db *gorm.DB, defaultPassword string) error {
	var role models.Role
	if err := db.Where("type = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, a := range initialAdmins {
		var count int64
		db.Model(&models.User{}).Where("email = ?", a.Email).Count(&count)
		if count > 0 {
			continue // Already seeded
		}

		// User and admin row go in together or not at all.
		err := db.Transaction(func(tx *gorm.DB) error {
			user := models.User{
				Name:     a.Name,
				Email:    a.Email,
				Password: string(hash),
				RoleID:   role.ID,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			admin := models.Admin{
				EmailUM6P:  a.Email,
				Department: "Cultur.Ed",
				Program:    "INSPIRE",
				UserID:     user.ID,
			}
			return tx.Create(&admin).Error
		})
		if err != nil {
			return err
		}
	}
	return nil
}
