// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

// MemoryDSN selects the in-memory key-value store.
const MemoryDSN = ":memory:"

// ClientStorages groups the client's durable state. Every component shares
// KV under its own key prefix.
type ClientStorages struct {
	KV        KeyValueStore
	Queue     *MutationQueue
	SyncStore *LocalSyncStore

	db *DB
}

// NewClientStorages opens the backend named by cfg.DB.DSN, runs the
// migrations and restores the mutation queue.
//
//   - postgres:// or postgresql:// opens PostgreSQL through pgx;
//   - ":memory:" uses [MemoryKeyValueStore];
//   - anything else is a SQLite file path, created if missing.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, queueOpts QueueOptions, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("func", "NewClientStorages").Str("dsn", RedactDSN(cfg.DB.DSN)).Msg("creating new storages...")

	db, err := openDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	var kv KeyValueStore
	if db == nil {
		kv = NewMemoryKeyValueStore()
	} else {
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		kv = NewSQLKeyValueStore(db)
	}

	queue, err := NewMutationQueue(ctx, kv, queueOpts, log)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	return &ClientStorages{
		KV:        kv,
		Queue:     queue,
		SyncStore: NewLocalSyncStore(kv, log),
		db:        db,
	}, nil
}

func openDB(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)
	case dsn == MemoryDSN:
		return nil, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := NewConnectPostgres(ctx, config.ClientDB{DSN: dsn}, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return db, nil
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDSN, dsn)
	default:
		db, err := NewConnectSQLite(ctx, config.ClientDB{DSN: dsn}, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return db, nil
	}
}

// RedactDSN returns dsn safe for logs: URL passwords are masked and an
// unparsable URL is reported only by its scheme.
func RedactDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return scheme + "://<redacted>"
	}
	return u.Redacted()
}

// Close releases the database connection, if any.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
