package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"Yatube/api/blog"
	"Yatube/api/models"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// FollowIndex is the feed of posts by followed authors.
func (server *Server) FollowIndex(c *gin.Context) {
	viewerID, _ := httpctx.CurrentUserID(c)
	page, err := server.Blog.FeedPosts(viewerID, c.Query("page"))
	if err != nil {
		server.serverError(c, err)
		return
	}
	server.render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "Following",
		"Page":  page,
	})
}

// ProfileFollow subscribes the viewer to the author. Repeats and
// self-follows change nothing.
func (server *Server) ProfileFollow(c *gin.Context) {
	follower := httpctx.CurrentUser(c)

	author, created, err := server.Blog.Follow(follower.ID, c.Param("username"))
	if err != nil && !errors.Is(err, blog.ErrSelfFollow) {
		server.handleError(c, err)
		return
	}
	if created {
		server.notifyFollower(author, follower)
	}
	c.Redirect(http.StatusFound, "/follow/")
}

// ProfileUnfollow removes the subscription; a missing one is a 404.
func (server *Server) ProfileUnfollow(c *gin.Context) {
	viewerID, _ := httpctx.CurrentUserID(c)
	username := c.Param("username")

	if err := server.Blog.Unfollow(viewerID, username); err != nil {
		server.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

func (server *Server) notifyFollower(author, follower *models.User) {
	if !server.Mailer.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Mailer.NewFollower(ctx, author, follower); err != nil {
			log.Printf("[mailer] follow %s -> %s: %v", follower.Username, author.Username, err)
		}
	}()
}
