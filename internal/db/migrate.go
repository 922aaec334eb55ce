package db

import (
	"os"                         // Seed credentials from the environment
	"pos_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Seed password hashing

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds the
// initial data a fresh install needs
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.Expense{}, &domain.MenuItem{}, &domain.Order{}, &domain.OrderItem{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	Seed(db)                            // Seed the first account and menu
	logrus.Info("Migration completed.") // Log successful migration
}

// Seed creates the first Super Admin account and a starter menu when the
// tables are empty, so a fresh install is immediately usable
func Seed(db *gorm.DB) {
	var userCount int64
	db.Model(&domain.User{}).Count(&userCount)
	if userCount == 0 {
		username := os.Getenv("SEED_ADMIN_USER") // Seed account name
		if username == "" {
			username = "superadmin"
		}
		password := os.Getenv("SEED_ADMIN_PASSWORD") // Seed account password
		if password == "" {
			password = "changeme123"
			logrus.Warn("SEED_ADMIN_PASSWORD not set, seeding with the default password; change it immediately")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logrus.Fatalf("failed to hash seed password: %v", err)
		}
		user := domain.User{Username: username, Password: string(hash), Role: domain.RoleSuperAdmin}
		if err := db.Create(&user).Error; err != nil {
			logrus.Fatalf("failed to seed admin user: %v", err)
		}
		logrus.WithField("username", username).Info("Seeded Super Admin account")
	}
	var menuCount int64
	db.Model(&domain.MenuItem{}).Count(&menuCount)
	if menuCount == 0 {
		// A handful of items so the register works out of the box
		items := []domain.MenuItem{
			{Name: "Nasi Goreng", Category: "Mains", Price: 9.50, Available: true},
			{Name: "Chicken Satay", Category: "Mains", Price: 11.00, Available: true},
			{Name: "Spring Rolls", Category: "Starters", Price: 5.50, Available: true},
			{Name: "Iced Tea", Category: "Drinks", Price: 3.00, Available: true},
			{Name: "Kopi", Category: "Drinks", Price: 3.50, Available: true},
		}
		if err := db.Create(&items).Error; err != nil {
			logrus.Fatalf("failed to seed menu: %v", err)
		}
		logrus.WithField("items", len(items)).Info("Seeded starter menu")
	}
}
