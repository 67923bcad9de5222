// utils/auth.go
package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateAccessToken issues a short-lived bearer token carrying the
// business id as subject.
func GenerateAccessToken(businessID, email string) (string, error) {
	expiryMinutes := 15
	if env := os.Getenv("JWT_ACCESS_EXPIRY_MINUTES"); env != "" {
		if m, err := strconv.Atoi(env); err == nil {
			expiryMinutes = m
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   businessID,
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	return token.SignedString([]byte(secret))
}

// GenerateRefreshToken issues the long-lived token that is also persisted
// server-side so it can be revoked.
func GenerateRefreshToken(businessID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(RefreshTokenTTL())
	// jti keeps back-to-back tokens for the same business distinct
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   businessID,
		"email": email,
		"jti":   uuid.NewString(),
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
	})

	secret := os.Getenv("JWT_REFRESH_SECRET")
	if secret == "" {
		return "", time.Time{}, errors.New("JWT_REFRESH_SECRET not set")
	}
	signed, err := token.SignedString([]byte(secret))
	return signed, expiresAt, err
}

// RefreshTokenTTL returns the refresh token lifetime (default 7 days)
func RefreshTokenTTL() time.Duration {
	days := 7
	if env := os.Getenv("JWT_REFRESH_EXPIRY_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil {
			days = d
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// ParseToken verifies an HS256 token against the secret held in the given
// environment variable and returns its claims.
func ParseToken(tokenString, secretEnv string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv(secretEnv)), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
