// Package database handles the connection to the apply history database.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that opens
// MySQL in production or SQLite for local runs and tests, based on the
// application's configuration.
//
// # Connect
//
// Connect builds the dialector for the configured driver, applies pool
// settings and pings the database within the configured timeout. The
// database is optional: when it is disabled or unreachable, apply runs are
// simply not recorded.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
