package utils

import (
	"errors"
	"fmt"
	"time"

	"container_loading/internal/app/ds"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyJWTKey is returned when tokens would be signed or checked with an empty key.
var ErrEmptyJWTKey = errors.New("jwt key is empty")

// GenerateJWT signs an HS256 token for the user and returns it with its expiry.
func GenerateJWT(key []byte, ttl time.Duration, userID int, role string) (string, time.Time, error) {
	if len(key) == 0 {
		return "", time.Time{}, ErrEmptyJWTKey
	}
	expiresAt := time.Now().Add(ttl)
	claims := &ds.JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenStr, expiresAt, nil
}

// ParseJWT validates tokenStr and returns its claims.
func ParseJWT(key []byte, tokenStr string) (*ds.JWTClaims, error) {
	if len(key) == 0 {
		return nil, ErrEmptyJWTKey
	}
	claims := &ds.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
