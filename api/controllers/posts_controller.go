package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"Yatube/api/blog"
	"Yatube/api/forms"
	"Yatube/api/models"
	"Yatube/api/storage"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// Index lists every post. Rendered pages are cached per viewer and page
// for INDEX_CACHE_TTL; writes do not invalidate them.
func (server *Server) Index(c *gin.Context) {
	viewerID, _ := httpctx.CurrentUserID(c)
	pageNumber, cacheable := cachePageNumber(c.Query("page"))

	if !cacheable {
		server.renderIndex(c, viewerID, 0)
		return
	}
	if body, ok := server.Cache.GetIndexPage(c.Request.Context(), viewerID, pageNumber); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
		return
	}
	server.renderIndex(c, viewerID, pageNumber)
}

// renderIndex renders the index page and caches it when pageNumber is set.
func (server *Server) renderIndex(c *gin.Context, viewerID uint, pageNumber int) {
	page, err := server.Blog.IndexPosts(c.Query("page"))
	if err != nil {
		server.serverError(c, err)
		return
	}
	body, err := server.renderBytes(c, "posts/index.html", gin.H{"Title": "Latest posts", "Page": page})
	if err != nil {
		server.serverError(c, err)
		return
	}
	if pageNumber > 0 {
		server.storeIndexPage(c, viewerID, pageNumber, body)
	}

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (server *Server) GroupPosts(c *gin.Context) {
	group, page, err := server.Blog.GroupPosts(c.Param("slug"), c.Query("page"))
	if err != nil {
		server.handleError(c, err)
		return
	}
	server.render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title": group.String(),
		"Group": group,
		"Page":  page,
	})
}

func (server *Server) Profile(c *gin.Context) {
	author, page, err := server.Blog.ProfilePosts(c.Param("username"), c.Query("page"))
	if err != nil {
		server.handleError(c, err)
		return
	}

	following := false
	viewerID, loggedIn := httpctx.CurrentUserID(c)
	if loggedIn && viewerID != author.ID {
		if following, err = server.Blog.IsFollowing(viewerID, author.ID); err != nil {
			server.serverError(c, err)
			return
		}
	}

	server.render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":      "Profile of " + author.Username,
		"Author":     author,
		"Page":       page,
		"PostsCount": page.Count,
		"Following":  following,
		"IsSelf":     loggedIn && viewerID == author.ID,
	})
}

func (server *Server) PostDetail(c *gin.Context) {
	postID, ok := server.idParam(c, "id")
	if !ok {
		return
	}
	server.renderPostDetail(c, http.StatusOK, postID, forms.CommentForm{}, nil)
}

func (server *Server) renderPostDetail(c *gin.Context, status int, postID uint, form forms.CommentForm, errs forms.Errors) {
	post, comments, err := server.Blog.PostDetail(postID)
	if err != nil {
		server.handleError(c, err)
		return
	}
	count, err := server.Blog.AuthorPostCount(post.AuthorID)
	if err != nil {
		server.serverError(c, err)
		return
	}
	viewerID, _ := httpctx.CurrentUserID(c)
	server.render(c, status, "posts/post_detail.html", gin.H{
		"Title":      post.String(),
		"Post":       post,
		"Comments":   comments,
		"PostsCount": count,
		"IsAuthor":   viewerID != 0 && viewerID == post.AuthorID,
		"Form":       form,
		"Errors":     errs,
	})
}

func (server *Server) renderPostForm(c *gin.Context, form forms.PostForm, errs forms.Errors, postID uint) {
	groups, err := server.Blog.Groups()
	if err != nil {
		server.serverError(c, err)
		return
	}
	title := "New post"
	if postID != 0 {
		title = "Edit post"
	}
	server.render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Title":  title,
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"IsEdit": postID != 0,
		"Post":   gin.H{"ID": postID},
	})
}

func (server *Server) CreatePostForm(c *gin.Context) {
	server.renderPostForm(c, forms.PostForm{}, nil, 0)
}

func (server *Server) CreatePost(c *gin.Context) {
	user := httpctx.CurrentUser(c)

	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		server.renderPostForm(c, form, forms.Errors{"__all__": "Could not read the submitted form."}, 0)
		return
	}
	form.Prepare()

	errs, err := server.Blog.ValidatePostForm(&form)
	if err != nil {
		server.serverError(c, err)
		return
	}
	var image string
	if !errs.Any() {
		image, err = server.saveUpload(c)
		if err != nil && !addImageError(errs, err) {
			server.serverError(c, err)
			return
		}
	}
	if errs.Any() {
		server.renderPostForm(c, form, errs, 0)
		return
	}

	if _, err := server.Blog.CreatePost(user.ID, &form, image); err != nil {
		server.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// postForEdit loads the post for its author. Non-authors are sent back to
// the post and false is returned.
func (server *Server) postForEdit(c *gin.Context) (*models.Post, uint, bool) {
	postID, ok := server.idParam(c, "id")
	if !ok {
		return nil, 0, false
	}
	editorID, _ := httpctx.CurrentUserID(c)

	post, err := server.Blog.PostForEdit(postID, editorID)
	if errors.Is(err, blog.ErrNotAuthor) {
		c.Redirect(http.StatusFound, detailURL(postID))
		return nil, 0, false
	}
	if err != nil {
		server.handleError(c, err)
		return nil, 0, false
	}
	return post, editorID, true
}

func (server *Server) EditPostForm(c *gin.Context) {
	post, _, ok := server.postForEdit(c)
	if !ok {
		return
	}
	server.renderPostForm(c, forms.NewPostForm(post), nil, post.ID)
}

func (server *Server) EditPost(c *gin.Context) {
	post, editorID, ok := server.postForEdit(c)
	if !ok {
		return
	}

	var form forms.PostForm
	if err := c.ShouldBind(&form); err != nil {
		server.renderPostForm(c, form, forms.Errors{"__all__": "Could not read the submitted form."}, post.ID)
		return
	}
	form.Prepare()

	errs, err := server.Blog.ValidatePostForm(&form)
	if err != nil {
		server.serverError(c, err)
		return
	}
	var image string
	if !errs.Any() {
		image, err = server.saveUpload(c)
		if err != nil && !addImageError(errs, err) {
			server.serverError(c, err)
			return
		}
	}
	if errs.Any() {
		server.renderPostForm(c, form, errs, post.ID)
		return
	}

	if _, err := server.Blog.UpdatePost(post, editorID, &form, image); err != nil {
		if errors.Is(err, blog.ErrNotAuthor) {
			c.Redirect(http.StatusFound, detailURL(post.ID))
			return
		}
		server.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailURL(post.ID))
}

// saveUpload stores the optional "image" file and returns its location.
func (server *Server) saveUpload(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", storage.ErrNotImage
	}
	if file.Size > storage.MaxImageSize {
		return "", storage.ErrImageTooLarge
	}
	f, err := file.Open()
	if err != nil {
		return "", storage.ErrNotImage
	}
	defer f.Close()

	return storage.SavePostImage(c.Request.Context(), server.Media, f)
}

// addImageError records upload validation failures on the form. Other
// errors are left to the caller.
func addImageError(errs forms.Errors, err error) bool {
	if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrImageTooLarge) {
		errs.Add("image", err.Error())
		return true
	}
	return false
}

func detailURL(postID uint) string {
	return "/posts/" + strconv.FormatUint(uint64(postID), 10) + "/"
}
