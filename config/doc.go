// Package config loads configuration for progressive tooling.
//
// It uses Viper to read a YAML file found in standard locations (or given
// explicitly), loads an optional .env file with godotenv, and lets
// PROGRESSIVE_-prefixed environment variables override file values.
//
// # Usage
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("progressive", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
//
// Environment variables map onto nested keys by underscore, e.g.
// PROGRESSIVE_SLICING_BUDGET sets slicing.budget.
package config
