package controllers

import (
	"net/http"

	"Yatube/api/forms"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// AddComment stores a comment and returns to the post. An invalid comment
// re-renders the post with the form errors.
func (server *Server) AddComment(c *gin.Context) {
	postID, ok := server.idParam(c, "id")
	if !ok {
		return
	}
	authorID, _ := httpctx.CurrentUserID(c)

	var form forms.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		server.renderPostDetail(c, http.StatusOK, postID, form, forms.Errors{"text": "Could not read the submitted form."})
		return
	}
	form.Prepare()
	if errs := form.Validate(); errs.Any() {
		server.renderPostDetail(c, http.StatusOK, postID, form, errs)
		return
	}

	if _, err := server.Blog.AddComment(postID, authorID, &form); err != nil {
		server.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailURL(postID))
}

// CommentRedirect sends a GET on the comment URL, typically the login
// "next" target, back to the post it belongs to.
func (server *Server) CommentRedirect(c *gin.Context) {
	postID, ok := server.idParam(c, "id")
	if !ok {
		return
	}
	if _, err := server.Blog.Post(postID); err != nil {
		server.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailURL(postID))
}
