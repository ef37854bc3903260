package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivajik34/aifastcommerce/internal/auth"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func TestIssueAccessToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auth.ValidateToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Subject)
		assert.Equal(t, "operator", claims.Role)
		assert.Equal(t, "aifastcommerce", claims.Issuer)
	})

	t.Run("expiry is set from ttl", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, "admin", 30*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateToken(testSecret, token)
		require.NoError(t, err)
		require.NotNil(t, claims.ExpiresAt)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, err := auth.ValidateToken(testSecret, "not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)

		_, err = auth.ValidateToken("a-completely-different-signing-secret", token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, "admin", -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateToken(testSecret, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects unsigned algorithm", func(t *testing.T) {
		t.Parallel()

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.ValidateToken(testSecret, tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
