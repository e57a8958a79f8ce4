// Package config provides configuration management for schema-sync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Every key is registered with the value of its
// `default` struct tag so that environment overrides are picked up.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Tracker: issue tracker URL, credentials, timeouts and read retry window
//   - Storage: S3/MinIO credentials, bucket and backup/export prefixes
//   - Database: apply history database (MySQL or SQLite)
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Tracker.BaseURL)
package config
