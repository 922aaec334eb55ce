package api

import (
	"context"                    // Context for Redis operations
	"net/http"                   // HTTP status codes
	"pos_system/internal/domain" // Domain models
	"pos_system/internal/utils"  // Cache helpers
	"strings"                    // String manipulation
	"time"                       // Date parsing

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// dateLayout is the wire format for expense and report dates
const dateLayout = "2006-01-02"

// ExpenseRequest is the create/update request body. Amount is a pointer so a
// missing amount can be told apart from an explicit zero.
type ExpenseRequest struct {
	ID          uint     `json:"id"`          // Required on update only
	Description string   `json:"description"` // What the money was spent on
	Amount      *float64 `json:"amount"`      // Non-negative amount
	Date        string   `json:"date"`        // YYYY-MM-DD
}

// validateExpense checks the request before anything touches the database
func validateExpense(req *ExpenseRequest) (string, float64, time.Time, string) {
	desc := strings.TrimSpace(req.Description) // Trimmed, must be non-empty
	if desc == "" {
		return "", 0, time.Time{}, "Description is required"
	}
	if req.Amount == nil {
		return "", 0, time.Time{}, "Amount is required"
	}
	// Monetary amounts are never negative
	if *req.Amount < 0 {
		return "", 0, time.Time{}, "Amount must not be negative"
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return "", 0, time.Time{}, "Date must be in YYYY-MM-DD format"
	}
	return desc, *req.Amount, date, ""
}

// invalidateExpenseCaches drops every cached expense listing after a write
func invalidateExpenseCaches(rdb *redis.Client) {
	ctx := context.Background() // Context for Redis operations
	if err := utils.DeleteCacheByPrefix(ctx, rdb, utils.ExpenseCachePrefix); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate expense cache")
	}
}

// CreateExpenseHandler records a new expense (Admin-gated)
func CreateExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "Invalid request body")
			return
		}
		// Reject invalid input before any database write
		desc, amount, date, msg := validateExpense(&req)
		if msg != "" {
			failValidation(c, msg)
			return
		}
		expense := domain.Expense{Description: desc, Amount: amount, Date: date}
		// Insert the expense
		if err := db.Create(&expense).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create expense")
			failInternal(c, "Failed to create expense")
			return
		}
		// Log the new expense
		logrus.WithFields(logrus.Fields{
			"expense_id": expense.ID, // New expense ID
			"amount":     amount,     // Amount spent
		}).Info("Expense created")
		invalidateExpenseCaches(rdb) // Listings are stale now
		c.JSON(http.StatusOK, gin.H{"success": true, "id": expense.ID})
	}
}

// UpdateExpenseHandler rewrites an existing expense (Admin-gated)
func UpdateExpenseHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			failValidation(c, "Invalid request body")
			return
		}
		if req.ID == 0 {
			failValidation(c, "Expense id is required")
			return
		}
		// Reject invalid input before any database write
		desc, amount, date, msg := validateExpense(&req)
		if msg != "" {
			failValidation(c, msg)
			return
		}
		var expense domain.Expense // Make sure the expense exists first
		if err := db.First(&expense, req.ID).Error; err != nil {
			fail(c, http.StatusNotFound, codeNotFound, "Expense not found")
			return
		}
		// Apply the update
		if err := db.Model(&expense).Updates(map[string]any{
			"description": desc,   // New description
			"amount":      amount, // New amount
			"date":        date,   // New date
		}).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"expense_id": req.ID,      // Expense being updated
				"error":      err.Error(), // Database failure
			}).Error("Failed to update expense")
			failInternal(c, "Failed to update expense")
			return
		}
		invalidateExpenseCaches(rdb) // Listings are stale now
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ReadExpensesHandler lists expenses with an optional date range filter.
// Public by declared policy: the dashboard renders the expense board without
// a session, matching the per-endpoint exposure rules.
func ReadExpensesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		startStr := c.Query("start_date") // Optional range start
		endStr := c.Query("end_date")     // Optional range end
		var start, end time.Time
		var err error
		if startStr != "" {
			if start, err = time.Parse(dateLayout, startStr); err != nil {
				failValidation(c, "start_date must be in YYYY-MM-DD format")
				return
			}
		}
		if endStr != "" {
			if end, err = time.Parse(dateLayout, endStr); err != nil {
				failValidation(c, "end_date must be in YYYY-MM-DD format")
				return
			}
		}
		ctx := context.Background()                                         // Context for Redis operations
		cacheKey := utils.ExpenseCachePrefix + startStr + ":" + endStr      // One cache entry per requested range
		var cached []domain.Expense                                         // Cached listing
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": cached, "cached": true})
			return
		}
		query := db.Model(&domain.Expense{}) // Start building the query
		if !start.IsZero() {
			query = query.Where("date >= ?", start) // Filter by range start
		}
		if !end.IsZero() {
			// End date is inclusive: anything before the following midnight
			query = query.Where("date < ?", end.AddDate(0, 0, 1))
		}
		expenses := make([]domain.Expense, 0) // Empty list, never null
		if err := query.Order("date desc").Find(&expenses).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to fetch expenses")
			failInternal(c, "Failed to fetch expenses")
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, expenses, utils.CacheTTL) // Cache the listing
		c.JSON(http.StatusOK, gin.H{"success": true, "data": expenses, "cached": false})
	}
}
