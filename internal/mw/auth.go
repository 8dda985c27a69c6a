package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airline-ops-backend/internal/access"
)

const sessionKey = "session"

// TokenParser verifies a bearer token and returns its session.
type TokenParser interface {
	Parse(token string) (access.Session, error)
}

// Authenticate requires a valid bearer token and stores its session on the context.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session stored by Authenticate.
func SessionFrom(c *gin.Context) (access.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return access.Session{}, false
	}
	s, ok := v.(access.Session)
	return s, ok
}

// Require rejects sessions whose role may not run op.
func Require(op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		if !access.Permitted(s.Role, op) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operation not permitted for role " + string(s.Role)})
			return
		}
		c.Next()
	}
}
