// Package middleware provides the gin middleware chain: JWT auth, request
// logging and prometheus metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
)

const (
	// userIDKey is the gin context key for the authenticated user's id.
	userIDKey = "user_id"
	// isAdminKey is the gin context key for the admin flag from the token.
	isAdminKey = "is_admin"
)

// UserID extracts the authenticated user's id from the request context.
// Returns empty string if the request is unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Value(userIDKey).(string)
	return id
}

// IsAdmin reports whether the authenticated user holds admin privilege.
func IsAdmin(c *gin.Context) bool {
	isAdmin, _ := c.Value(isAdminKey).(bool)
	return isAdmin
}

// RequireAuth validates the Bearer token and stores the caller's identity in
// the request context, aborting with 401 otherwise.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, jwtManager)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(isAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// OptionalAuth stores the caller's identity if a valid token is present but
// lets unauthenticated requests through.
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := claimsFromHeader(c, jwtManager); err == nil {
			c.Set(userIDKey, claims.UserID)
			c.Set(isAdminKey, claims.IsAdmin)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, jwtManager *auth.JWTManager) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, auth.ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return jwtManager.Validate(token)
}
