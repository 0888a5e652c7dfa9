package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jengzang/metro-live-backend-go/pkg/response"
)

// UserIDKey is the gin context key holding the verified token subject
const UserIDKey = "userID"

var errMissingSubject = errors.New("token has no subject")

// ParseToken verifies an HS256 token and returns its subject
func ParseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if subject == "" {
		return "", errMissingSubject
	}
	return subject, nil
}

// SignToken mints an HS256 token for subject, used by tests and local tooling
func SignToken(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Auth middleware attaches the bearer token subject when present.
// A malformed or invalid token is rejected; a missing one is not.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.Unauthorized(c, "invalid authorization header")
			return
		}

		subject, err := ParseToken(tokenString, secret)
		if err != nil {
			response.Error(c, 401, "invalid token", err)
			return
		}

		c.Set(UserIDKey, subject)
		c.Next()
	}
}

// RequireUser rejects requests without a verified subject
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			response.Unauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// UserID returns the verified subject, or empty when the request is anonymous
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
