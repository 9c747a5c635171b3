package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignToken("64f1c0ffee0ddba11decade5")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0ddba11decade5", subject)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := SignToken("abc")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := jwt.RegisteredClaims{
		Subject:   "abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(expired)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestNewResetToken(t *testing.T) {
	plain, hashed, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 40)
	assert.Len(t, hashed, 64)
	assert.Equal(t, hashed, HashResetToken(plain))

	plain2, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, plain, plain2)
}

func TestHashResetTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}
