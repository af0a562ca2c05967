package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	signed, err := tokens.Issue("user-123", constants.RoleVolunteer)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, constants.RoleVolunteer, claims.Role())
	assert.Equal(t, "JWT", claims.Source())
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("different-secret", time.Hour)

	signed, err := tokens.Issue("user-123", constants.RoleVolunteer)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Nanosecond)

	signed, err := tokens.Issue("user-123", constants.RoleVolunteer)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	_, err := tokens.Verify("not.a.token")
	assert.Error(t, err)
}
