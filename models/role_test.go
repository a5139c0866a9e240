// role_test.go - Tests for role permission decoding and checks

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	role := Role{Type: RoleSuperAdmin, IsActive: true}
	role.SetPermissions([]string{"manage_users", "generate_reports"})

	assert.Equal(t, []string{"manage_users", "generate_reports"}, role.PermissionList())
	assert.True(t, role.HasPermission("manage_users"))
	assert.False(t, role.HasPermission("mark_attendance"))

	// Inactive roles grant nothing, whatever they carry
	role.IsActive = false
	assert.False(t, role.HasPermission("manage_users"))
}

func TestUserPermissionDelegation(t *testing.T) {
	user := User{}
	assert.False(t, user.HasPermission("manage_users")) // No role loaded
	assert.False(t, user.HasRole(RoleAdmin))

	role := Role{Type: RoleAdmin, IsActive: true}
	role.SetPermissions([]string{"manage_students"})
	user.Role = &role

	assert.True(t, user.HasRole(RoleAdmin))
	assert.True(t, user.HasPermission("manage_students"))
	assert.False(t, user.HasPermission("manage_users"))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPresent, StatusAbsent, StatusLate, StatusExcused} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("vacation"))
	assert.False(t, ValidStatus(""))
}
