package handlers

import (
	"log"
	"net/http"

	"country-explorer/internal/cache"

	"github.com/gin-gonic/gin"
)

// PurgeExpiredCache removes every expired cache entry
// DELETE /api/cache/expired
func PurgeExpiredCache(c *cache.ExpiringCache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		removed, err := c.PurgeExpired()
		if err != nil {
			log.Printf("handlers: purge expired cache entries: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to purge cache",
			})
			return
		}
		remaining, err := c.Len()
		if err != nil {
			log.Printf("handlers: count cache entries: %v", err)
		}
		ctx.JSON(http.StatusOK, gin.H{
			"removed":   removed,
			"remaining": remaining,
		})
	}
}
