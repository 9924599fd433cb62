package httpctx

import (
	"Yatube/api/models"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey  = "userID"
	UserKey    = "user"
	IsAdminKey = "isAdmin"
)

// CurrentUserID retrieves the authenticated user ID from Gin context if present.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok && uid != 0
}

// CurrentUser returns the user loaded by the session middleware.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(UserKey)
	if !exists {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

// IsAdminRequest indicates whether the current request is from an admin.
func IsAdminRequest(c *gin.Context) bool {
	val, exists := c.Get(IsAdminKey)
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
