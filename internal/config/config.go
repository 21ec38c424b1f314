// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// offline-sync client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: request signing key, version,
	// default sync context and logging.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote service address, timeout and session token.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Queue tunes the persistent mutation queue and its retry backoff.
	Queue Queue `envPrefix:"QUEUE_"`

	// Cache bounds the read cache.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds intervals of the background loops.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header). Empty disables signing.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// DefaultContext is the sync context used when the session token does
	// not carry one.
	// Env: APP_DEFAULT_CONTEXT
	DefaultContext string `env:"DEFAULT_CONTEXT"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile overrides the rotated log file location.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local database.
type DB struct {
	// DSN selects the backend: a SQLite file path, a postgres:// URL, or
	// ":memory:" for a process-local store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the outbound transport to the remote service.
type Adapter struct {
	// HTTPAddress is the base address of the remote service, either
	// "host:port" or a full http(s) URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer session token sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Queue holds mutation queue settings.
type Queue struct {
	// Capacity is the maximum number of queued mutations.
	// Env: QUEUE_CAPACITY
	Capacity int `env:"CAPACITY"`

	// MaxRetries is the number of failed drain passes after which a
	// mutation is marked FAILED.
	// Env: QUEUE_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BackoffBase is the first delay of the in-pass exponential backoff.
	// Env: QUEUE_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`
}

// Cache holds read cache settings.
type Cache struct {
	// TTL is the default freshness window of a cached page.
	// Env: CACHE_TTL
	TTL time.Duration `env:"TTL"`

	// MaxEntries bounds the in-memory pages.
	// Env: CACHE_MAX_ENTRIES
	MaxEntries int `env:"MAX_ENTRIES"`

	// RecentEntries is how many recently viewed pages a reconnect evicts.
	// Env: CACHE_RECENT_ENTRIES
	RecentEntries int `env:"RECENT_ENTRIES"`
}

// Workers holds intervals of the background loops.
type Workers struct {
	// SyncInterval is the period of the reference-data delta sync.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// HealthInterval is the period of the connectivity health check.
	// Env: WORKERS_HEALTH_INTERVAL
	HealthInterval time.Duration `env:"HEALTH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
