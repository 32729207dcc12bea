package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("sess-1", "user-9", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "user-9", claims.UserID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("sess-1", "user-9", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("sess-1", "user-9", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestPeekUpstreamToken(t *testing.T) {
	upstream := jwt.NewWithClaims(jwt.SigningMethodHS256, UpstreamClaims{
		Email: "tenant@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := upstream.SignedString([]byte("someone-elses-key"))
	require.NoError(t, err)

	claims, err := PeekUpstreamToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "tenant@example.com", claims.Email)

	_, err = PeekUpstreamToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
