package main

import (
	"finance_tracker/internal/config" // Custom import path (Config)
	"finance_tracker/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Only the mysql driver has a schema to migrate
	if cfg.DBDriver != config.DriverMySQL {
		logrus.Infof("nothing to migrate for driver %q", cfg.DBDriver)
		return
	}
	dsn := cfg.DSN() // Data Source Name for MySQL connection
	if dsn == "" {
		logrus.Fatal("DB_DSN or DB_HOST and DB_NAME must be set")
	}
	db.Migrate(dsn)
}
