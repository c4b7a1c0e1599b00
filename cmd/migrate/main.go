package main

import (
	"chainvora/internal/config" // Custom import path (Config)
	"chainvora/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Create or update every table
}
