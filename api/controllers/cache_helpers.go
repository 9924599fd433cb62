package controllers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

// cachePageNumber maps ?page= to the cache key page. Only an absent
// parameter or a positive number is cached; out-of-range numbers keep
// their own key and hold the last page.
func cachePageNumber(raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (server *Server) storeIndexPage(c *gin.Context, viewerID uint, page int, body []byte) {
	if err := server.Cache.SetIndexPage(c.Request.Context(), viewerID, page, body, server.Config.IndexCacheTTL); err != nil {
		log.Printf("[cache] index page %d not stored: %v", page, err)
	}
}
