// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	sq "github.com/Masterminds/squirrel"
)

const (
	kvTable       = "kv_store"
	kvKeyColumn   = "k"
	kvValueColumn = "v"
	kvTimeColumn  = "updated_at"
)

type sqlKeyValueStore struct {
	*DB
	now func() time.Time
}

// NewSQLKeyValueStore returns a [KeyValueStore] over the kv_store table
// created by the migrations.
func NewSQLKeyValueStore(db *DB) KeyValueStore {
	return &sqlKeyValueStore{DB: db, now: time.Now}
}

func (s *sqlKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		PlaceholderFormat(s.placeholder()).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.retryOnce(ctx, func() error {
		return s.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "sqlKeyValueStore.Get").Str("key", key).Msg("failed to read key")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, true, nil
}

func (s *sqlKeyValueStore) Put(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvTimeColumn).
		Values(key, value, s.now().UTC()).
		Suffix("ON CONFLICT (k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at").
		PlaceholderFormat(s.placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.retryOnce(ctx, func() error {
		_, execErr := s.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "sqlKeyValueStore.Put").Str("key", key).Msg("failed to upsert key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlKeyValueStore) Remove(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		PlaceholderFormat(s.placeholder()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.retryOnce(ctx, func() error {
		_, execErr := s.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "sqlKeyValueStore.Remove").Str("key", key).Msg("failed to delete key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
