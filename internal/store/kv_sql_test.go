// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockKV(t *testing.T, dialect Dialect, classifier ErrorClassificator) (*sqlKeyValueStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := NewDB(conn, dialect, classifier, logger.Nop())
	kv := NewSQLKeyValueStore(db).(*sqlKeyValueStore)
	kv.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return kv, mock
}

func TestSQLKeyValueStore_Get(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v FROM kv_store WHERE k = ?")).
		WithArgs("queue:mutations").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("[]"))

	v, ok, err := kv.Get(context.Background(), "queue:mutations")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_GetMissing(t *testing.T) {
	kv, mock := newMockKV(t, DialectPostgres, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v FROM kv_store WHERE k = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	_, ok, err := kv.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_GetError(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT v FROM kv_store")).
		WillReturnError(errors.New("disk I/O error"))

	_, _, err := kv.Get(context.Background(), "k")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_Put(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, nil)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store (k,v,updated_at) VALUES (?,?,?) ON CONFLICT (k) DO UPDATE")).
		WithArgs("sync:menu", "[]", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, kv.Put(context.Background(), "sync:menu", "[]"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_PutPostgresPlaceholders(t *testing.T) {
	kv, mock := newMockKV(t, DialectPostgres, nil)

	mock.ExpectExec(regexp.QuoteMeta("VALUES ($1,$2,$3)")).
		WithArgs("k", "v", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kv.Put(context.Background(), "k", "v"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_PutRetriesBusyOnce(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, NewSQLiteErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, kv.Put(context.Background(), "k", "v"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_PutDoesNotRetryConstraint(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, NewSQLiteErrorClassifier())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint})

	err := kv.Put(context.Background(), "k", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_Remove(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE k = ?")).
		WithArgs("cache:abc").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, kv.Remove(context.Background(), "cache:abc"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_RemoveError(t *testing.T) {
	kv, mock := newMockKV(t, DialectSQLite, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store")).
		WillReturnError(sql.ErrConnDone)

	err := kv.Remove(context.Background(), "k")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
