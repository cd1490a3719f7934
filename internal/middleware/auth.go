package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gapfarm/portal/api/internal/auth"
)

const (
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey = "principal"
	// AuthorizationHeader is the HTTP header carrying the bearer token
	AuthorizationHeader = "Authorization"
)

// RequireAuth creates a middleware that validates the bearer token and stores
// the authenticated principal in the Gin context. Requests without a valid
// token are rejected with 401.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthorizationHeader)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(c)
			return
		}

		claims, err := auth.Parse(tokenString, secret)
		if err != nil {
			unauthorized(c)
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireRoles creates a middleware that rejects requests whose principal does
// not hold one of the given roles. Must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			unauthorized(c)
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		if log := GetLogger(c); log != nil {
			log.Warn("Role not permitted", map[string]interface{}{
				"role": principal.Role,
				"path": c.Request.URL.Path,
			})
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": gin.H{
				"code":       "FORBIDDEN",
				"message":    "You do not have permission to access this resource",
				"request_id": GetRequestID(c),
			},
		})
		c.Abort()
	}
}

// GetPrincipal retrieves the authenticated principal from the Gin context.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	if v, exists := c.Get(PrincipalKey); exists {
		if principal, ok := v.(auth.Principal); ok {
			return principal, true
		}
	}
	return auth.Principal{}, false
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":       "UNAUTHORIZED",
			"message":    "Authentication required",
			"request_id": GetRequestID(c),
		},
	})
	c.Abort()
}
