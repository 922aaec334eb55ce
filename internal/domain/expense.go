package domain

import "time"

// Expense Model
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`  // Primary key
	Description string    `gorm:"not null" json:"description"` // What the money was spent on
	Amount      float64   `gorm:"not null" json:"amount"`      // Non-negative amount
	Date        time.Time `gorm:"not null;index" json:"date"`  // Day the expense was made
}
