// Package tokens проверяет access-токены внешнего провайдера идентификации.
// Сессии мы не ведем и токены не выпускаем (кроме как в тестах): подпись HS256
// общим с провайдером секретом, id юзера лежит в клейме sub.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

type IdentityClaims struct {
	jwt.RegisteredClaims
}

// UserID возвращает идентификатор юзера из клейма sub.
func (c *IdentityClaims) UserID() string {
	return c.Subject
}

func ValidateIdentityJWT(tokenString string, key []byte) (*IdentityClaims, error) {
	claims := new(IdentityClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing identity jwt token: %w", err)
	}

	parsedClaims, ok := token.Claims.(*IdentityClaims)
	if !ok || parsedClaims.Subject == "" {
		return nil, errors.New("invalid identity claims")
	}
	return parsedClaims, nil
}

// GenerateIdentityJWT выпускает токен в формате провайдера. Используется тестами.
func GenerateIdentityJWT(userID string, expire time.Duration, key []byte) (string, error) {
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating identity jwt token: %s", err.Error())
	}
	return tokenString, nil
}
