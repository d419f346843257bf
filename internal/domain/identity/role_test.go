package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates role with normalized name", func(t *testing.T) {
		role, err := NewRole(tenantID, "  Manager ")

		require.NoError(t, err)
		assert.Equal(t, "manager", role.Name)
		assert.Equal(t, tenantID, role.TenantID)
		assert.False(t, role.IsSystem)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewRole(tenantID, "")

		assert.Error(t, err)
	})
}

func TestRole_Rename(t *testing.T) {
	tenantID := uuid.New()

	t.Run("renames a regular role", func(t *testing.T) {
		role, _ := NewRole(tenantID, "viewer")
		require.NoError(t, role.Rename("auditor"))
		assert.Equal(t, "auditor", role.Name)
	})

	t.Run("system roles cannot be renamed", func(t *testing.T) {
		role, _ := NewSystemRole(tenantID, RoleNameAdmin)
		assert.Error(t, role.Rename("superadmin"))
	})
}

func TestRole_SetPermissions(t *testing.T) {
	role, _ := NewRole(uuid.New(), "manager")

	a, b := uuid.New(), uuid.New()
	require.NoError(t, role.SetPermissions([]uuid.UUID{a, b, a}))

	assert.Len(t, role.PermissionIDs, 2)
	assert.True(t, role.HasPermission(a))
	assert.False(t, role.HasPermission(uuid.New()))

	assert.Error(t, role.SetPermissions([]uuid.UUID{uuid.Nil}))
}
