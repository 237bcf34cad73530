package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentityJWT(t *testing.T) {
	key := []byte("super secret key")
	userID := "7e2a4f4e-8c67-4f0f-9a9c-0b8f6f9a1d33"

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateIdentityJWT(userID, time.Hour, key)
		require.NoError(t, err)

		claims, err := ValidateIdentityJWT(token, key)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateIdentityJWT(userID, -time.Minute, key)
		require.NoError(t, err)

		_, err = ValidateIdentityJWT(token, key)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateIdentityJWT(userID, time.Hour, []byte("another key"))
		require.NoError(t, err)

		_, err = ValidateIdentityJWT(token, key)
		assert.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		token, err := GenerateIdentityJWT("", time.Hour, key)
		require.NoError(t, err)

		_, err = ValidateIdentityJWT(token, key)
		assert.Error(t, err)
	})

	// провайдер подписывает только HS256; токен с alg=none отклоняем до проверки клеймов.
	t.Run("unexpected signing method", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ValidateIdentityJWT(token, key)
		assert.Error(t, err)
	})
}
