package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard-io/taskboard/internal/models"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("taskboard", []byte("test-signing-key"), 24*time.Hour)

	token, err := svc.Issue(&models.User{
		ID:       42,
		Username: "alice",
		RoleName: models.RoleNameAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleNameAdmin, claims.Role)
	assert.Equal(t, "taskboard", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_ExpiryIsTokenTTLAfterIssuance(t *testing.T) {
	svc := NewTokenService("taskboard", []byte("test-signing-key"), 24*time.Hour)

	token, err := svc.Issue(&models.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)

	assert.Equal(t, 24*time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenService_MissingRoleFallsBackToEmployee(t *testing.T) {
	svc := NewTokenService("taskboard", []byte("test-signing-key"), time.Hour)

	token, err := svc.Issue(&models.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleNameEmployee, claims.Role)
}

func TestTokenService_ValidateRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("taskboard", []byte("test-signing-key"), time.Hour)

	user := &models.User{ID: 1, Username: "alice"}

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewTokenService("taskboard", []byte("another-key"), time.Hour)
		token, err := other.Issue(user)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenService("someone-else", []byte("test-signing-key"), time.Hour)
		token, err := other.Issue(user)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenService("taskboard", []byte("test-signing-key"), -time.Hour)
		token, err := expired.Issue(user)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
