package controllers

import (
	"strings"

	"Yatube/api/middlewares"
	"Yatube/api/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initializeRoutes() {
	login := middlewares.LoginRequired()

	s.Router.GET("/", s.Index)
	s.Router.GET("/group/:slug/", s.GroupPosts)
	s.Router.GET("/profile/:username/", s.Profile)
	s.Router.GET("/posts/:id/", s.PostDetail)

	s.Router.GET("/create/", login, s.CreatePostForm)
	s.Router.POST("/create/", login, s.CreatePost)
	s.Router.GET("/posts/:id/edit/", login, s.EditPostForm)
	s.Router.POST("/posts/:id/edit/", login, s.EditPost)
	s.Router.GET("/posts/:id/comment/", login, s.CommentRedirect)
	s.Router.POST("/posts/:id/comment/", login, s.AddComment)

	s.Router.GET("/follow/", login, s.FollowIndex)
	s.Router.GET("/profile/:username/follow/", login, s.ProfileFollow)
	s.Router.GET("/profile/:username/unfollow/", login, s.ProfileUnfollow)

	auth := s.Router.Group("/auth")
	{
		auth.GET("/login/", s.LoginPage)
		auth.POST("/login/", s.loginLimiter.Middleware(), s.Login)
		auth.GET("/signup/", s.SignupPage)
		auth.POST("/signup/", s.loginLimiter.Middleware(), s.Signup)
		auth.GET("/logout/", s.Logout)
	}

	admin := s.Router.Group("/admin", login, middlewares.AdminOnly())
	{
		admin.POST("/cache/clear/", s.ClearIndexCache)
	}

	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if local, ok := s.Media.(*storage.LocalStore); ok {
		s.Router.Static(strings.TrimRight(local.URL, "/"), local.Root)
	}

	s.Router.NoRoute(s.notFound)
}
