// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/migrations"
	sq "github.com/Masterminds/squirrel"
)

// Dialect names the SQL backend behind a [DB].
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an open connection. classifier may be nil, in which case no
// error is retried.
func NewDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{DB: conn, dialect: dialect, errorClassificator: classifier, logger: log}
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) placeholder() sq.PlaceholderFormat {
	if db.dialect == DialectPostgres {
		return sq.Dollar
	}
	return sq.Question
}

// retryOnce runs op and repeats it a single time when the first failure is
// classified as [Retryable].
func (db *DB) retryOnce(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || db.errorClassificator == nil || ctx.Err() != nil {
		return err
	}
	if db.errorClassificator.Classify(err) != Retryable {
		return err
	}

	db.logger.Warn().Err(err).Str("func", "DB.retryOnce").Msg("retrying database operation")
	return op()
}
