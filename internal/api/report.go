package api

import (
	"context"                    // Context for Redis operations
	"net/http"                   // HTTP status codes
	"pos_system/internal/domain" // Domain models
	"pos_system/internal/utils"  // Cache helpers
	"time"                       // Date range handling

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ReportSummary is the overall totals for the requested range
type ReportSummary struct {
	TotalOrders     int64   `json:"total_orders"`     // Every order in range, any status
	CompletedOrders int64   `json:"completed_orders"` // Orders that were settled
	TotalRevenue    float64 `json:"total_revenue"`    // Revenue from completed orders only
	StartDate       string  `json:"start_date"`       // Effective range start
	EndDate         string  `json:"end_date"`         // Effective range end
}

// TypeBreakdown is the per-order-type aggregate
type TypeBreakdown struct {
	OrderType string  `json:"order_type"` // Dine In, Take Away or Delivery
	Orders    int64   `json:"orders"`     // Orders of this type
	Revenue   float64 `json:"revenue"`    // Completed revenue of this type
}

// TopItem is one row of the top-sellers list with a per-status quantity split
type TopItem struct {
	MenuItemID   uint   `json:"menu_item_id"`  // Menu item
	Name         string `json:"name"`          // Item name
	TotalQty     int64  `json:"total_qty"`     // Units across all statuses
	CompletedQty int64  `json:"completed_qty"` // Units on completed orders
	HoldQty      int64  `json:"hold_qty"`      // Units on held orders
	CancelledQty int64  `json:"cancelled_qty"` // Units on cancelled orders
}

// StatusCount is one row of the status breakdown
type StatusCount struct {
	Status string `json:"status"` // Order status
	Orders int64  `json:"orders"` // Orders in that status
}

// reportRange resolves the caller-supplied range, defaulting to
// first-of-month through today. End is inclusive.
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()) // First of the current month
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var err error
	if s := c.Query("start_date"); s != "" {
		if start, err = time.Parse(dateLayout, s); err != nil {
			failValidation(c, "start_date must be in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
	}
	if e := c.Query("end_date"); e != "" {
		if end, err = time.Parse(dateLayout, e); err != nil {
			failValidation(c, "end_date must be in YYYY-MM-DD format")
			return time.Time{}, time.Time{}, false
		}
	}
	return start, end, true
}

// SalesReportHandler aggregates orders over a date range (report-view role,
// i.e. Admin and above). All aggregation happens in SQL; the handler only
// shapes rows. An empty range yields zero-filled aggregates, not an error.
func SalesReportHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, ok := reportRange(c)
		if !ok {
			return // Validation failure already written
		}
		until := end.AddDate(0, 0, 1) // Exclusive upper bound: end day included

		ctx := context.Background() // Context for Redis operations
		cacheKey := utils.ReportCachePrefix + start.Format(dateLayout) + ":" + end.Format(dateLayout)
		var cachedData gin.H // Cached report body
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cachedData); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cachedData, "cached": true})
			return
		}

		// Summary: counts and completed revenue in one aggregate query
		var summary ReportSummary
		if err := db.Raw(`
			SELECT COUNT(*) AS total_orders,
			       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed_orders,
			       COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS total_revenue
			FROM orders
			WHERE created_at >= ? AND created_at < ?`,
			domain.OrderStatusCompleted, domain.OrderStatusCompleted, start, until,
		).Scan(&summary).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Sales report summary query failed")
			failInternal(c, "Failed to build sales report")
			return
		}
		summary.StartDate = start.Format(dateLayout) // Echo the effective range
		summary.EndDate = end.Format(dateLayout)

		// Per-order-type breakdown
		byType := make([]TypeBreakdown, 0)
		if err := db.Raw(`
			SELECT order_type,
			       COUNT(*) AS orders,
			       COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS revenue
			FROM orders
			WHERE created_at >= ? AND created_at < ?
			GROUP BY order_type
			ORDER BY orders DESC`,
			domain.OrderStatusCompleted, start, until,
		).Scan(&byType).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Sales report by-type query failed")
			failInternal(c, "Failed to build sales report")
			return
		}

		// Top ten items by quantity sold, with a per-status quantity split
		topItems := make([]TopItem, 0)
		if err := db.Raw(`
			SELECT mi.id AS menu_item_id,
			       mi.name AS name,
			       SUM(oi.quantity) AS total_qty,
			       COALESCE(SUM(CASE WHEN o.status = ? THEN oi.quantity ELSE 0 END), 0) AS completed_qty,
			       COALESCE(SUM(CASE WHEN o.status = ? THEN oi.quantity ELSE 0 END), 0) AS hold_qty,
			       COALESCE(SUM(CASE WHEN o.status = ? THEN oi.quantity ELSE 0 END), 0) AS cancelled_qty
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			JOIN menu_items mi ON mi.id = oi.menu_item_id
			WHERE o.created_at >= ? AND o.created_at < ?
			GROUP BY mi.id, mi.name
			ORDER BY total_qty DESC
			LIMIT 10`,
			domain.OrderStatusCompleted, domain.OrderStatusHold, domain.OrderStatusCancelled, start, until,
		).Scan(&topItems).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Sales report top-items query failed")
			failInternal(c, "Failed to build sales report")
			return
		}

		// Status counts, zero-filled so every status always appears
		var statusRows []StatusCount
		if err := db.Raw(`
			SELECT status, COUNT(*) AS orders
			FROM orders
			WHERE created_at >= ? AND created_at < ?
			GROUP BY status`,
			start, until,
		).Scan(&statusRows).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Sales report status query failed")
			failInternal(c, "Failed to build sales report")
			return
		}
		counts := map[string]int64{}
		for _, row := range statusRows {
			counts[row.Status] = row.Orders
		}
		statusBreakdown := []StatusCount{
			{Status: domain.OrderStatusCompleted, Orders: counts[domain.OrderStatusCompleted]},
			{Status: domain.OrderStatusHold, Orders: counts[domain.OrderStatusHold]},
			{Status: domain.OrderStatusCancelled, Orders: counts[domain.OrderStatusCancelled]},
		}

		data := gin.H{
			"summary":          summary,         // Overall totals
			"by_type":          byType,          // Per order type
			"top_items":        topItems,        // Top ten sellers
			"status_breakdown": statusBreakdown, // Per status, zero-filled
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, data, utils.CacheTTL) // Cache the report
		c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "cached": false})
	}
}
