package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"sub":  "user-1",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, Role(signedToken(t, RoleAdmin)))
	assert.Equal(t, RoleUser, Role(signedToken(t, RoleUser)))
	assert.Empty(t, Role("not-a-jwt"))
	assert.Empty(t, Role(""))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(signedToken(t, RoleAdmin)))
	assert.False(t, IsAdmin(signedToken(t, RoleUser)))
	assert.False(t, IsAdmin("garbage"))
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticToken("").Token()
	assert.ErrorIs(t, err, ErrNoToken)
}
