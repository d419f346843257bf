package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with valid email and password", func(t *testing.T) {
		user, err := NewUser(tenantID, "alice@example.com", "Password123")

		require.NoError(t, err)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Empty(t, user.RoleIDs)

		events := user.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser(tenantID, "Alice@Example.COM", "Password123")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser(tenantID, "", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid email format", func(t *testing.T) {
		_, err := NewUser(tenantID, "not-an-email", "Password123")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "alice@example.com", "Pass1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with password without numbers", func(t *testing.T) {
		_, err := NewUser(tenantID, "alice@example.com", "Password")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one letter and one number")
	})
}

func TestUser_VerifyPassword(t *testing.T) {
	user, _ := NewUser(uuid.New(), "alice@example.com", "Password123")

	assert.True(t, user.VerifyPassword("Password123"))
	assert.False(t, user.VerifyPassword("WrongPassword1"))
}

func TestUser_ChangePassword(t *testing.T) {
	user, _ := NewUser(uuid.New(), "alice@example.com", "Password123")

	t.Run("fails with wrong current password", func(t *testing.T) {
		err := user.ChangePassword("Wrong1234", "NewPassword1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")
	})

	t.Run("changes password with correct current password", func(t *testing.T) {
		err := user.ChangePassword("Password123", "NewPassword1")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword1"))
		assert.False(t, user.VerifyPassword("Password123"))
	})
}

func TestUser_Roles(t *testing.T) {
	user, _ := NewUser(uuid.New(), "alice@example.com", "Password123")
	roleID := uuid.New()

	t.Run("assigns role", func(t *testing.T) {
		err := user.AssignRole(roleID)

		require.NoError(t, err)
		assert.True(t, user.HasRole(roleID))
	})

	t.Run("rejects duplicate assignment", func(t *testing.T) {
		err := user.AssignRole(roleID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already has this role")
	})

	t.Run("removes role", func(t *testing.T) {
		err := user.RemoveRole(roleID)

		require.NoError(t, err)
		assert.False(t, user.HasRole(roleID))
	})

	t.Run("fails removing unassigned role", func(t *testing.T) {
		err := user.RemoveRole(uuid.New())

		assert.Error(t, err)
	})

	t.Run("set roles deduplicates", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		err := user.SetRoles([]uuid.UUID{a, b, a})

		require.NoError(t, err)
		assert.Len(t, user.RoleIDs, 2)
	})
}

func TestUser_StatusTransitions(t *testing.T) {
	user, _ := NewUser(uuid.New(), "alice@example.com", "Password123")

	t.Run("deactivate then reactivate", func(t *testing.T) {
		require.NoError(t, user.Deactivate())
		assert.False(t, user.CanLogin())

		require.NoError(t, user.Activate())
		assert.True(t, user.CanLogin())
	})

	t.Run("deactivating twice fails", func(t *testing.T) {
		require.NoError(t, user.Deactivate())
		err := user.Deactivate()

		assert.Error(t, err)
	})
}
