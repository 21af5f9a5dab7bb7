package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
	CtxUserRole  = "user_role"
	CtxClaims    = "claims"
)

// extractToken reads the bearer token from the Authorization header,
// falling back to the auth cookie set at login.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token != authHeader {
			return token
		}
		return ""
	}

	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxUserEmail, claims.Email)
	c.Set(CtxUserRole, claims.Role)
	c.Set(CtxClaims, claims)
}

// AuthMiddleware rejects requests without a valid credential.
// Missing, malformed or expired tokens are all a 401; insufficient
// privilege is AdminMiddleware's 403.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization required. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves a credential when one is presented
// but lets anonymous requests through. Public listings use it so admins
// see unapproved rows while everyone else gets the approved subset.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := utils.ValidateToken(tokenString, jwtSecret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// AdminMiddleware requires a resolved admin role. Runs after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user's id, or "" when anonymous.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// IsAdmin reports whether the resolved role is admin.
func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get(CtxUserRole)
	return exists && role == models.RoleAdmin
}
