package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const RoleManager = "manager"

const devJWTSecret = "tab-pos-dev-secret"

// JWTSecret signs manager tokens. Set from configuration at start-up.
var JWTSecret = []byte(devJWTSecret)

// SetJWTSecret keeps the built-in development secret when secret is empty and says so.
func SetJWTSecret(secret string) {
	if secret == "" {
		JWTSecret = []byte(devJWTSecret)
		ErrorLogger.Warn("JWT_SECRET not set, manager tokens are signed with the development secret")
		return
	}
	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a short-lived token after the manager PIN was verified.
func GenerateToken(role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			// unique per token, so revoking one never revokes a sibling issued in the same second
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "tab-pos",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JWTSecret)
	if err != nil {
		ErrorLogger.WithError(err).Error("error generating token")
		return "", err
	}
	return tokenString, nil
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
