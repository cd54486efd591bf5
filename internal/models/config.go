package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Pricing  PricingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	PingTimeout        time.Duration
	CreateDemoProfiles bool
}

// PricingConfig holds pricing seed settings
type PricingConfig struct {
	File string
}
