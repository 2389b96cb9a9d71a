package jwtmw

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing or invalid"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token missing"})
			return
		}

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			slog.Error("JWT_SECRET is not set")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server configuration error (JWT secret missing)"})
			return
		}

		// 3. Parse and verify JWT signature (HMAC only)
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			slog.Warn("token verification failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		// 4. Extract the user id; tokens without one are rejected
		claims, _ := token.Claims.(jwt.MapClaims)
		userID := subject(claims)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid token"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// subject reads "sub", falling back to the "id" claim.
func subject(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "id"} {
		if s, ok := claims[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
