package domain

import "time"

// Order statuses
const (
	OrderStatusCompleted = "Completed" // Paid and served
	OrderStatusHold      = "Hold"      // Open, not yet settled
	OrderStatusCancelled = "Cancelled" // Voided before completion
)

// Order types
const (
	OrderTypeDineIn   = "Dine In"
	OrderTypeTakeAway = "Take Away"
	OrderTypeDelivery = "Delivery"
)

// Order Model
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`        // Primary key
	OrderType string      `gorm:"not null" json:"order_type"`  // Dine In, Take Away or Delivery
	Status    string      `gorm:"not null;default:Hold;index" json:"status"` // Completed, Hold or Cancelled
	Total     float64     `gorm:"not null;default:0" json:"total"`           // Sum of item price snapshots
	Items     []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"` // Line items
	CreatedAt time.Time   `gorm:"index" json:"created_at"`     // When the order was placed
}

// OrderItem Model
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`         // Primary key
	OrderID    uint    `gorm:"index;not null" json:"order_id"`    // Parent order
	MenuItemID uint    `gorm:"not null" json:"menu_item_id"` // Ordered menu item
	Quantity   int     `gorm:"not null" json:"quantity"`     // Units ordered
	// Price is snapshotted at order time so later menu price changes do not
	// rewrite historical orders
	Price float64 `gorm:"not null" json:"price"`
}
