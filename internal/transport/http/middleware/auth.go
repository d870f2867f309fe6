package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	errTokenRequired = "access denied, token required"
	errTokenInvalid  = "invalid or expired token"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
)

// Auth validates a JWT from the Authorization header and sets the decoded
// identity in the gin context. The header is accepted either as
// "Bearer <token>" or as the raw token; some clients omit the scheme.
func Auth(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenRequired})
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
			return
		}
		email, _ := claims["email"].(string)

		c.Set(CtxUserID, userID)
		c.Set(CtxUserEmail, email)
		c.Next()
	}
}
