// Package config provides configuration management for delivery-sync.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials for the raw snapshot archive
//   - Log: Logging level and format
//   - Partner: partner API endpoint and credentials
//   - Sync: dataset name and cache TTL for the pipeline
//
// Defaults are declared on each partial config struct through the `default`
// tag and bound by reflection, so every key is visible to AutomaticEnv.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Partner.Endpoint)
package config
