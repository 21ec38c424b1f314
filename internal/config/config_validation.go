// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Only values that
// would never be meaningful are rejected here; required fields are checked
// on the client view.
func (cfg *StructuredConfig) validate() error {
	if cfg.Queue.Capacity < 0 || cfg.Queue.MaxRetries < 0 || cfg.Queue.BackoffBase < 0 {
		return ErrInvalidQueueConfigs
	}
	if cfg.Cache.TTL < 0 || cfg.Cache.MaxEntries < 0 || cfg.Cache.RecentEntries < 0 {
		return ErrInvalidCacheConfigs
	}
	if cfg.Workers.SyncInterval < 0 || cfg.Workers.HealthInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		return ErrInvalidStorageConfigs
	}
	if scheme, _, ok := strings.Cut(dsn, "://"); ok && scheme != "postgres" && scheme != "postgresql" {
		return fmt.Errorf("%w: unsupported DSN scheme %q", ErrInvalidStorageConfigs, scheme)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Queue.Capacity <= 0 || cfg.Queue.MaxRetries <= 0 || cfg.Queue.BackoffBase <= 0 {
		return ErrInvalidQueueConfigs
	}

	if cfg.Cache.TTL <= 0 || cfg.Cache.MaxEntries <= 0 || cfg.Cache.RecentEntries <= 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.HealthInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	return nil
}
