// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the durable state of the sync client: a string
// key-value store (SQLite, PostgreSQL or memory), the persistent
// [MutationQueue] and the reference-data [LocalSyncStore].
//
// All components share one [KeyValueStore] under disjoint key prefixes:
// "queue:", "cache:" and "sync:".
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueStore is durable string storage.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; err is reserved for storage failures.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ErrorClassification is the result of [ErrorClassificator.Classify]. It
// tells whether a failed database operation should be retried.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors.
	NonRetryable ErrorClassification = iota

	// Retryable failures may succeed on a second attempt (lock contention,
	// dropped connection, deadlock rollback).
	Retryable
)
