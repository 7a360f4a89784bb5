package middleware

import (
	"finance_tracker/internal/utils" // JWT utility functions
	"net/http"                       // HTTP status codes
	"strings"                        // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// EmailKey is the context key holding the authenticated email
const EmailKey = "email"

// JWTAuthMiddleware verifies the bearer token on every request and stores its
// email claim under EmailKey
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization")) // Extract the token string
		// No token at all
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No provided token"})
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret) // Verify signature and expiry
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(),
				"error": err.Error(),
			}).Debug("Rejected token")
			// Bad signature, malformed or expired
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}
		c.Set(EmailKey, claims.Email) // Store email in context
		c.Next()                      // Proceed to the next handler
	}
}

// Email returns the authenticated email set by JWTAuthMiddleware
func Email(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// bearerToken returns the second space separated part of the header
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
