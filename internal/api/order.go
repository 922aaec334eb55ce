package api

import (
	"context"                    // Context for Redis operations
	"errors"                     // Sentinel error matching
	"net/http"                   // HTTP status codes
	"pos_system/internal/domain" // Domain models
	"pos_system/internal/utils"  // Cache helpers
	"strconv"                    // Pagination parsing
	"time"                       // Date filters

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"` // Which menu item
	Quantity   int  `json:"quantity" binding:"required"`     // How many units
}

// CreateOrderRequest is the new-order request body
type CreateOrderRequest struct {
	OrderType string             `json:"order_type" binding:"required"` // Dine In, Take Away or Delivery
	Status    string             `json:"status"`                        // Optional, defaults to Hold
	Items     []OrderItemRequest `json:"items" binding:"required"`      // At least one line item
}

// validOrderType checks the order type against the known set
func validOrderType(t string) bool {
	return t == domain.OrderTypeDineIn || t == domain.OrderTypeTakeAway || t == domain.OrderTypeDelivery
}

// validOrderStatus checks the status against the known set
func validOrderStatus(s string) bool {
	return s == domain.OrderStatusCompleted || s == domain.OrderStatusHold || s == domain.OrderStatusCancelled
}

// invalidateReportCaches drops every cached sales report after orders change
func invalidateReportCaches(rdb *redis.Client) {
	ctx := context.Background() // Context for Redis operations
	if err := utils.DeleteCacheByPrefix(ctx, rdb, utils.ReportCachePrefix); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate report cache")
	}
}

// CreateOrderHandler records a new order. Item prices are snapshotted from the
// menu inside the transaction so later menu edits never rewrite history.
func CreateOrderHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "Invalid request body")
			return
		}
		if !validOrderType(req.OrderType) {
			failValidation(c, "Unknown order type")
			return
		}
		status := req.Status // Status defaults to Hold
		if status == "" {
			status = domain.OrderStatusHold
		}
		if !validOrderStatus(status) {
			failValidation(c, "Unknown order status")
			return
		}
		if len(req.Items) == 0 {
			failValidation(c, "An order needs at least one item")
			return
		}
		for _, item := range req.Items {
			// Quantities are whole positive units
			if item.Quantity <= 0 {
				failValidation(c, "Item quantity must be positive")
				return
			}
		}
		order := domain.Order{OrderType: req.OrderType, Status: status}
		// Price the items and write the order atomically
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, item := range req.Items {
				var menuItem domain.MenuItem // Look up the menu item
				if err := tx.Where("id = ? AND available = ?", item.MenuItemID, true).First(&menuItem).Error; err != nil {
					return err // Unknown or unavailable item rolls back
				}
				order.Items = append(order.Items, domain.OrderItem{
					MenuItemID: menuItem.ID,    // Ordered item
					Quantity:   item.Quantity,  // Units
					Price:      menuItem.Price, // Price snapshot at order time
				})
				order.Total += menuItem.Price * float64(item.Quantity) // Running total
			}
			return tx.Create(&order).Error // Order and items in one go
		})
		// Handle transaction result
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				failValidation(c, "Order contains an unknown or unavailable menu item")
				return
			}
			logrus.WithFields(logrus.Fields{
				"order_type": req.OrderType, // Requested type
				"error":      err.Error(),   // Database failure
			}).Error("Failed to create order")
			failInternal(c, "Failed to create order")
			return
		}
		// Log the new order
		logrus.WithFields(logrus.Fields{
			"order_id":   order.ID,        // New order ID
			"order_type": order.OrderType, // Order type
			"status":     order.Status,    // Initial status
			"total":      order.Total,     // Snapshot total
		}).Info("Order created")
		invalidateReportCaches(rdb) // Reports are stale now
		c.JSON(http.StatusOK, gin.H{"success": true, "id": order.ID, "total": order.Total})
	}
}

// OrderStatusRequest moves an order between statuses
type OrderStatusRequest struct {
	ID     uint   `json:"id" binding:"required"`     // Order to move
	Status string `json:"status" binding:"required"` // Target status
}

// UpdateOrderStatusHandler settles, holds or cancels an order
func UpdateOrderStatusHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "Order id and status are required")
			return
		}
		if !validOrderStatus(req.Status) {
			failValidation(c, "Unknown order status")
			return
		}
		var order domain.Order // Make sure the order exists first
		if err := db.First(&order, req.ID).Error; err != nil {
			fail(c, http.StatusNotFound, codeNotFound, "Order not found")
			return
		}
		// Apply the status change
		if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": req.ID,      // Order being updated
				"error":    err.Error(), // Database failure
			}).Error("Failed to update order status")
			failInternal(c, "Failed to update order")
			return
		}
		// Log the transition
		logrus.WithFields(logrus.Fields{
			"order_id": req.ID,     // Order ID
			"status":   req.Status, // New status
		}).Info("Order status updated")
		invalidateReportCaches(rdb) // Reports are stale now
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ReadOrdersHandler lists orders with optional status and date filters,
// newest first, paginated like every other listing
func ReadOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page
		pageSize := 20 // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		offset := (page - 1) * pageSize       // Calculate offset
		query := db.Model(&domain.Order{})    // Start building the query
		if status := c.Query("status"); status != "" {
			if !validOrderStatus(status) {
				failValidation(c, "Unknown order status")
				return
			}
			query = query.Where("status = ?", status) // Filter by status
		}
		if s := c.Query("start_date"); s != "" {
			start, err := time.Parse(dateLayout, s)
			if err != nil {
				failValidation(c, "start_date must be in YYYY-MM-DD format")
				return
			}
			query = query.Where("created_at >= ?", start) // Filter by range start
		}
		if e := c.Query("end_date"); e != "" {
			end, err := time.Parse(dateLayout, e)
			if err != nil {
				failValidation(c, "end_date must be in YYYY-MM-DD format")
				return
			}
			query = query.Where("created_at < ?", end.AddDate(0, 0, 1)) // End day included
		}
		var total int64 // Total matching orders
		if err := query.Count(&total).Error; err != nil {
			failInternal(c, "Failed to count orders")
			return
		}
		orders := make([]domain.Order, 0) // Empty list, never null
		// Fetch paginated orders with their line items
		if err := query.Preload("Items").Order("created_at desc").Offset(offset).Limit(pageSize).Find(&orders).Error; err != nil {
			failInternal(c, "Failed to fetch orders")
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"data":        orders,     // List of orders
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total matching orders
			"total_pages": totalPages, // Total pages
		})
	}
}
