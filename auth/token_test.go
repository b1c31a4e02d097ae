package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)

	token, expiresAt, err := issuer.Issue("admin@example.com", "5a1b4f9e-1111-4222-8333-444455556666")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "5a1b4f9e-1111-4222-8333-444455556666", claims.AdminID)
	assert.Equal(t, claims.AdminID, claims.Subject)
}

func TestTokenExpired(t *testing.T) {
	clock := newFakeClock()
	issuer := NewTokenIssuer("test-secret", 24*time.Hour).WithClock(clock.Now)

	token, _, err := issuer.Issue("admin@example.com", "id")
	require.NoError(t, err)

	clock.Advance(24*time.Hour + time.Minute)
	_, err = issuer.Parse(token)
	assert.True(t, errs.IsExpiredTokenError(err))
}

func TestTokenForeignSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("other-secret", time.Hour).Issue("admin@example.com", "id")
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Hour).Parse(token)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Hour).Parse(token)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestTokenGarbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret", time.Hour).Parse("not-a-token")
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("", "hunter2"))
}
