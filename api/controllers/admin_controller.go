package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearIndexCache drops every cached index page.
func (server *Server) ClearIndexCache(c *gin.Context) {
	n, err := server.Cache.ClearIndex(c.Request.Context())
	if err != nil {
		log.Printf("[cache] clear failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear the cache"})
		return
	}
	log.Printf("[cache] cleared %d index pages", n)
	c.JSON(http.StatusOK, gin.H{"cleared": n})
}
