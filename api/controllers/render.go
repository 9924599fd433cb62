package controllers

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"Yatube/api/blog"
	httpctx "Yatube/api/utils/httpctx"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// page adds what every template expects to data.
func (server *Server) page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = httpctx.CurrentUser(c)
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	return data
}

func (server *Server) render(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, server.page(c, data))
}

// renderBytes executes a page outside the response, for caching.
func (server *Server) renderBytes(c *gin.Context, name string, data gin.H) ([]byte, error) {
	var buf bytes.Buffer
	if err := server.Templates.ExecuteTemplate(&buf, name, server.page(c, data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (server *Server) notFound(c *gin.Context) {
	server.render(c, http.StatusNotFound, "core/404.html", gin.H{
		"Title": "Page not found",
		"Path":  c.Request.URL.Path,
	})
}

func (server *Server) serverError(c *gin.Context, err error) {
	log.Printf("[server] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	sentry.CaptureException(err)
	server.render(c, http.StatusInternalServerError, "core/500.html", gin.H{"Title": "Server error"})
}

// handleError renders the 404 page for missing records and the 500 page
// for everything else.
func (server *Server) handleError(c *gin.Context, err error) {
	if blog.IsNotFound(err) {
		server.notFound(c)
		return
	}
	server.serverError(c, err)
}

// idParam parses a numeric path parameter; anything else is a 404.
func (server *Server) idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		server.notFound(c)
		return 0, false
	}
	return uint(id), true
}
