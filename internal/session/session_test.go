package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	assert.Equal(t, "", s.Token())

	s.Save("abc")
	assert.Equal(t, "abc", s.Token())

	s.Clear()
	assert.Equal(t, "", s.Token())
}

func TestParseClaims(t *testing.T) {
	now := time.Now()

	t.Run("Valid", func(t *testing.T) {
		token := signToken(t, Claims{
			Email: "ana@example.com",
			Role:  "authenticated",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-123",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})

		claims, err := ParseClaims(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID())
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.False(t, claims.Expired(now))
		assert.True(t, claims.Expired(now.Add(2*time.Hour)))
	})

	t.Run("NoExpiry", func(t *testing.T) {
		token := signToken(t, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}})

		claims, err := ParseClaims(token)
		require.NoError(t, err)
		assert.False(t, claims.Expired(now))
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseClaims("not-a-jwt")
		assert.ErrorIs(t, err, ErrMalformedToken)

		_, err = ParseClaims("")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})
}
