// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the offline-first sync core on top of the
// store and adapter layers: queue draining with conflict resolution,
// reconnect handling, the cached read path and the reference-data bundle
// sync.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/network"
	"github.com/MKhiriev/go-offline-sync/models"
)

// ConflictResolver decides what happens to a mutation the server rejected
// as conflicting. Implementations must be pure.
type ConflictResolver interface {
	// Resolve returns the action for m. entityDeleted is true when the
	// target no longer exists on the server.
	Resolve(m models.Mutation, entityDeleted bool) models.ConflictDecision
}

// MutationQueue is the subset of the persistent queue the sync engine
// drives. *store.MutationQueue implements it.
type MutationQueue interface {
	Claim(ctx context.Context, id string) (models.Mutation, error)
	Release(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) (models.Mutation, error)
	MarkConflicted(ctx context.Context, id string) (models.Mutation, error)
	Remove(ctx context.Context, id string) error
	RequeueSyncing(ctx context.Context) (int, error)
	PendingIDs() []string
	PendingCount() int
}

// SyncEngine delivers queued mutations to the remote service.
type SyncEngine interface {
	// ProcessQueue drains the mutations that are pending when it is called,
	// one at a time in queue order. Only one drain runs at a time. It returns
	// ctx.Err() when cancelled and storage errors; remote failures are
	// recorded on the mutations instead.
	ProcessQueue(ctx context.Context) error

	// Start drains the queue once per reconnect edge of source until ctx
	// ends or Stop is called.
	Start(ctx context.Context, source network.ReconnectSource)

	// Stop cancels the reconnect loop and waits for it to exit.
	Stop()

	State() models.SyncState
	SubscribeState() (<-chan models.SyncState, func())
	SubscribeConflicts() (<-chan models.ConflictEvent, func())
	PendingCount() int
}

// DataLoader is the cached read path.
type DataLoader interface {
	// LoadData returns a fresh cached page, or fetches one. On remote
	// failure it falls back to any cached copy, however old, before
	// returning the error.
	LoadData(ctx context.Context, endpoint string, cfg models.LoadConfig, params map[string]string) (models.DataPage, error)

	// SubmitData writes through to the remote service and invalidates the
	// cached pages under the endpoint's parent path.
	SubmitData(ctx context.Context, endpoint string, body json.RawMessage, method string) (json.RawMessage, error)

	// InvalidateRecent evicts the most recently served pages.
	InvalidateRecent()

	// Invalidate evicts pages whose endpoint lies under prefix.
	Invalidate(prefix string)

	Clear()
	Len() int
}

// ReloadSignal tells views to re-read their data after a reconnect.
type ReloadSignal struct {
	At time.Time
}

// ConnectivitySyncManager reacts to reconnects: drain the queue, drop the
// recently viewed pages and ask views to reload.
type ConnectivitySyncManager interface {
	HandleReconnect(ctx context.Context) error
	Run(ctx context.Context)
	Stop()
	SubscribeReloads() (<-chan ReloadSignal, func())
}

// LocalSyncStore is the durable side of the bundle sync.
// *store.LocalSyncStore implements it.
type LocalSyncStore interface {
	SaveBundle(ctx context.Context, b models.Bundle) error
	LoadBundle(ctx context.Context) (models.Bundle, bool, error)
	Hashes(ctx context.Context) (map[string]string, error)
	UpdateBucket(ctx context.Context, bucket string, content json.RawMessage, hash string) error
	RemoveScreen(ctx context.Context, key string) error
	LastSyncedAt(ctx context.Context) (time.Time, bool, error)
	SetSyncedAt(ctx context.Context, t time.Time) error
}

// DataSyncService keeps the reference-data bundle current.
type DataSyncService interface {
	// FullSync downloads and stores the whole bundle. When the remote is
	// unreachable but a bundle is stored it serves that one and reports
	// Stale instead of failing.
	FullSync(ctx context.Context) error

	// DeltaSync fetches only buckets whose hash changed. Without local
	// hashes it performs a FullSync.
	DeltaSync(ctx context.Context) error

	State() models.SyncState
	SubscribeState() (<-chan models.SyncState, func())

	// Screens returns the cached screen definitions.
	Screens() map[string]json.RawMessage

	// Bundle returns the stored bundle; ok is false before the first sync.
	Bundle(ctx context.Context) (models.Bundle, bool, error)
}

// DataSyncJob runs DeltaSync periodically.
type DataSyncJob interface {
	// Start launches the background sync goroutine, syncing every interval.
	// Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Run starts the job with its configured interval.
	Run(ctx context.Context)

	// Stop signals the goroutine to exit and waits for it.
	Stop()
}
