package auth

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	t.Parallel()

	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := tm.Issue(42, "alice@example.com", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), actor.ID)
	assert.Equal(t, "alice@example.com", actor.Email)
	assert.Equal(t, models.RoleAdmin, actor.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tm, err := NewTokenManager("secret-a")
	require.NoError(t, err)
	other, err := NewTokenManager("secret-b")
	require.NoError(t, err)

	token, err := tm.Issue(1, "a@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assertCode(t, err, models.CodeUnauthenticated)
}

func TestTokenManager_Garbage(t *testing.T) {
	t.Parallel()

	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	_, err = tm.Verify("not.a.token")
	assertCode(t, err, models.CodeUnauthenticated)

	_, err = tm.Verify("")
	assertCode(t, err, models.CodeUnauthenticated)
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("")
	assert.Error(t, err)
}
