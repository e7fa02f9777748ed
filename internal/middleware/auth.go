package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalvguti/family-expenses-be/internal/models"
	"github.com/dalvguti/family-expenses-be/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by Authenticate/OptionalAuth.
const (
	ctxUserKey = "currentUser"
	ctxRoleKey = "userRole"
)

// Authenticate validates the bearer token, resolves the user and stores it on
// the context. Every failure mode short-circuits with the uniform envelope.
func Authenticate(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, "Authentication required. Please log in.")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Invalid or expired token. Please log in again.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, "User not found. Please log in again.")
			} else {
				util.Error(c, http.StatusInternalServerError, "Authentication error")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			util.Error(c, http.StatusForbidden, "Your account has been deactivated. Please contact administrator.")
			c.Abort()
			return
		}

		c.Set(ctxUserKey, &user)
		c.Set(ctxRoleKey, user.Role)
		c.Next()
	}
}

// OptionalAuth performs the same resolution as Authenticate but never rejects:
// on any failure the request proceeds anonymously.
func OptionalAuth(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := util.ParseToken(jwtSecret, tokenStr); err == nil {
				var user models.User
				if err := db.First(&user, claims.UserID).Error; err == nil && user.IsActive {
					c.Set(ctxUserKey, &user)
					c.Set(ctxRoleKey, user.Role)
				}
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects any caller whose resolved role is not admin. It must
// run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get(ctxRoleKey); role != models.RoleAdmin {
			util.Error(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user resolved by Authenticate/OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
