package middlewares

import (
	"net/http"

	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// AdminOnly ensures that the incoming request is authenticated and belongs to an admin user.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpctx.IsAdminRequest(c) {
			c.Next()
			return
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}
