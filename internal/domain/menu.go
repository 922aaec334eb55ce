package domain

// MenuItem Model
type MenuItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`          // Primary key
	Name      string  `gorm:"unique;not null" json:"name"`   // Item name shown on the menu
	Category  string  `json:"category"`                      // Menu section (Mains, Drinks, ...)
	Price     float64 `gorm:"not null" json:"price"`         // Current selling price
	Available bool    `gorm:"not null;default:true" json:"available"` // Whether the item can be ordered
}
