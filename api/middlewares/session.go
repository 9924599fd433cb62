package middlewares

import (
	"net/http"
	"net/url"

	"Yatube/api/auth"
	"Yatube/api/models"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginURL is where anonymous clients are sent for protected pages.
const LoginURL = "/auth/login/"

// Session loads the user behind the session token, if any. Requests
// without a valid token continue anonymously.
func Session(db *gorm.DB, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := tokens.ExtractTokenID(c.Request)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.Select("id", "username", "email", "is_admin").First(&user, userID).Error; err != nil {
			c.Next()
			return
		}

		c.Set(httpctx.UserIDKey, user.ID)
		c.Set(httpctx.UserKey, &user)
		c.Set(httpctx.IsAdminKey, user.IsAdmin)
		c.Next()
	}
}

// LoginRequired redirects anonymous clients to the login page, keeping
// the requested path in ?next=.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := httpctx.CurrentUserID(c); ok {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

func LoginRedirectURL(next string) string {
	return LoginURL + "?" + url.Values{"next": {next}}.Encode()
}
