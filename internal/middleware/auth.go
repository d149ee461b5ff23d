package middleware

import (
	"strings"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware resolves the caller's session. The token is taken from the
// session cookie or, failing that, a bearer Authorization header. A token is
// only honored while its sessions row exists and is not revoked, and while
// the user it references still exists.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(tokenString, cfg.SessionSecret)
		if err != nil {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		var session models.Session
		if err := db.Where("id = ? AND user_id = ? AND is_revoked = ?", claims.SessionID, claims.UserID, false).First(&session).Error; err != nil {
			utils.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.Unauthorized(c, "User not found")
			} else {
				utils.InternalServerError(c, "Database error resolving user: "+err.Error())
			}
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Set("currentUser", &user)
		c.Set("sessionID", session.ID)

		c.Next()
	}
}

// RoleAuthMiddleware admits the request iff the caller's role is in the
// allowed set. The allowed set for every endpoint is declared in routes.go.
// It should be used *after* AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			utils.InternalServerError(c, "User role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		role, ok := userRole.(models.Role)
		if !ok {
			utils.InternalServerError(c, "User role in context is not of expected type.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("session_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

// GetCurrentUser returns the resolved user from context.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("currentUser")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// GetUserIDFromContext returns the caller's user id from context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// GetUserRoleFromContext returns the caller's role from context.
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}
