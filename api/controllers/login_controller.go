package controllers

import (
	"net/http"
	"strings"

	"Yatube/api/auth"
	"Yatube/api/forms"
	"Yatube/api/models"
	"Yatube/api/security"
	"Yatube/api/utils/formaterror"

	"github.com/gin-gonic/gin"
)

func (server *Server) LoginPage(c *gin.Context) {
	server.render(c, http.StatusOK, "users/login.html", gin.H{
		"Title": "Log in",
		"Form":  forms.LoginForm{Next: c.Query("next")},
	})
}

// Login checks the credentials, sets the session cookie and continues to
// ?next= when it is a local path.
func (server *Server) Login(c *gin.Context) {
	var form forms.LoginForm
	_ = c.ShouldBind(&form)
	form.Username = strings.TrimSpace(form.Username)

	user := models.User{Username: form.Username, Password: form.Password}
	if errs := user.Validate("login"); len(errs) > 0 {
		server.render(c, http.StatusOK, "users/login.html", gin.H{
			"Title": "Log in", "Form": form, "Errors": errs,
		})
		return
	}

	token, err := server.SignIn(form.Username, form.Password)
	if err != nil {
		form.Password = ""
		server.render(c, http.StatusOK, "users/login.html", gin.H{
			"Title": "Log in", "Form": form, "Errors": formaterror.FormatError(err.Error()),
		})
		return
	}

	http.SetCookie(c.Writer, server.Tokens.SessionCookie(token, server.Config.IsProduction()))
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

// SignIn returns a session token for valid credentials.
func (server *Server) SignIn(username, password string) (string, error) {
	user, err := (&models.User{}).FindUserByUsername(server.DB, username)
	if err != nil {
		return "", err
	}
	if err := security.VerifyPassword(user.Password, password); err != nil {
		return "", err
	}
	return server.Tokens.CreateToken(user.ID)
}

func (server *Server) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, auth.ExpiredSessionCookie(server.Config.IsProduction()))
	c.Redirect(http.StatusFound, "/")
}

func (server *Server) SignupPage(c *gin.Context) {
	server.render(c, http.StatusOK, "users/signup.html", gin.H{
		"Title": "Sign up",
		"Form":  forms.SignupForm{},
	})
}

// Signup creates the account and returns to the index.
func (server *Server) Signup(c *gin.Context) {
	var form forms.SignupForm
	_ = c.ShouldBind(&form)

	user := models.User{Username: form.Username, Email: form.Email, Password: form.Password}
	user.Prepare()
	form.Username, form.Email = user.Username, user.Email

	errs := form.Validate(&user)
	if !errs.Any() {
		taken, err := user.UsernameTaken(server.DB)
		if err != nil {
			server.serverError(c, err)
			return
		}
		if taken {
			errs.Add("username", models.ErrUsernameTaken.Error())
		}
	}
	if !errs.Any() {
		if _, err := user.SaveUser(server.DB); err != nil {
			for field, message := range formaterror.FormatError(err.Error()) {
				errs.Add(field, message)
			}
		}
	}
	if errs.Any() {
		server.render(c, http.StatusOK, "users/signup.html", gin.H{
			"Title": "Sign up", "Form": form, "Errors": errs,
		})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// safeNext only follows local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
