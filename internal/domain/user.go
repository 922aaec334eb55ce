package domain

// User Model
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`                                   // Primary key
	Username  string `gorm:"unique;not null" json:"username"`                        // Unique username
	Password  string `gorm:"not null" json:"-"`                                      // Hashed password, never serialized
	Role      Role   `gorm:"type:varchar(20);not null;default:Cashier" json:"role"`  // Role: Cashier, Admin or Super Admin
	IsDeleted bool   `gorm:"not null;default:false" json:"-"`                        // Soft-delete flag; deleted users cannot log in
}
