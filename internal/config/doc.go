// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env struct tags.
// Everything has a sane default; validation only rejects nonsensical values.
package config
