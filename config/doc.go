// Package config provides configuration loading and validation.
//
// It uses Viper to load a config.yml plus a .env file, layering environment
// variables over both. The full application configuration is the Config
// struct; sections map onto the packages they configure (oracle gateway,
// transcription, storage, chapter pipeline, telemetry).
//
// # Usage
//
//	cfg, err := config.LoadApp()
//
// Environment variables override file values using underscore-separated
// paths (e.g. ORACLE_MAX_ATTEMPTS, STORAGE_BUCKET).
package config
