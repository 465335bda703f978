package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates user successfully", func(t *testing.T) {
		user, err := NewUser(tenantID, "Ana@Example.com", "Ana Souza", "s3cret-pass", UserRoleManager)

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, "Ana Souza", user.Name)
		assert.Equal(t, UserRoleManager, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Equal(t, tenantID, user.TenantID)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	})

	t.Run("defaults to operator role", func(t *testing.T) {
		user, err := NewUser(tenantID, "ana@example.com", "Ana", "s3cret-pass", "")

		require.NoError(t, err)
		assert.Equal(t, UserRoleOperator, user.Role)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		user, err := NewUser(tenantID, "not-an-email", "Ana", "s3cret-pass", UserRoleOwner)

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with short password", func(t *testing.T) {
		user, err := NewUser(tenantID, "ana@example.com", "Ana", "short", UserRoleOwner)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "ana@example.com", "Ana", "s3cret-pass", UserRoleOwner)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "ana@example.com", "Ana", "s3cret-pass", UserRoleOwner)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("new-secret-pass"))

	assert.True(t, user.CheckPassword("new-secret-pass"))
	assert.False(t, user.CheckPassword("s3cret-pass"))
}

func TestUser_Lifecycle(t *testing.T) {
	user, err := NewUser(uuid.New(), "ana@example.com", "Ana", "s3cret-pass", UserRoleOwner)
	require.NoError(t, err)

	user.Deactivate()
	assert.False(t, user.IsActive())

	user.Activate()
	assert.True(t, user.IsActive())

	now := time.Now()
	user.RecordLogin(now)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, now, *user.LastLoginAt, time.Second)
}
