package api

import (
	"context"                    // Context for Redis operations
	"net/http"                   // HTTP status codes
	"pos_system/internal/domain" // Domain models
	"pos_system/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ReadMenuHandler lists the orderable menu. Public by declared policy: the
// dashboard shows the menu before anyone logs in.
func ReadMenuHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var cached []domain.MenuItem
		// Try to get the menu from cache
		if found, err := utils.GetCache(ctx, rdb, utils.MenuCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached, "cached": true})
			return
		}
		items := make([]domain.MenuItem, 0) // Empty list, never null
		// Only available items are shown to the register
		if err := db.Where("available = ?", true).Order("category, name").Find(&items).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch menu")
			failInternal(c, "Failed to fetch menu")
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.MenuCacheKey, items, utils.CacheTTL) // Cache the menu
		c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "cached": false})
	}
}
