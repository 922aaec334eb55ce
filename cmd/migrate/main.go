package main

import (
	"pos_system/internal/config" // Custom import path (Config)
	"pos_system/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN()) // Create the schema and seed the first account
}
