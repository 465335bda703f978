package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-with-enough-length",
		Expiration: time.Hour,
		Issuer:     "pedezap-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	t.Run("round-trips claims", func(t *testing.T) {
		service := newTestJWTService()
		userID := uuid.New()
		tenantID := uuid.New()

		token, expiresAt, err := service.Issue(userID, tenantID, "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := service.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, tenantID.String(), claims.TenantID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "pedezap-test", claims.Issuer)

		parsedUser, parsedTenant, err := claims.ParseIDs()
		require.NoError(t, err)
		assert.Equal(t, userID, parsedUser)
		assert.Equal(t, tenantID, parsedTenant)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		service := newTestJWTService()

		claims, err := service.Validate("not.a.token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		service := newTestJWTService()
		other := NewJWTService(config.JWTConfig{
			Secret:     "a-completely-different-secret-key",
			Expiration: time.Hour,
			Issuer:     "pedezap-test",
		})

		token, _, err := other.Issue(uuid.New(), uuid.New(), "admin")
		require.NoError(t, err)

		claims, err := service.Validate(token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		service := NewJWTService(config.JWTConfig{
			Secret:     "test-secret-key-with-enough-length",
			Expiration: -time.Minute,
			Issuer:     "pedezap-test",
		})

		token, _, err := service.Issue(uuid.New(), uuid.New(), "admin")
		require.NoError(t, err)

		claims, err := service.Validate(token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
