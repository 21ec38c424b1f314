// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/require"
)

var (
	errConflict = &adapter.RemoteError{Kind: adapter.KindConflict, StatusCode: 409, Message: "stale version"}
	errNotFound = &adapter.RemoteError{Kind: adapter.KindNotFound, StatusCode: 404, Message: "no such entity"}
	errGone     = &adapter.RemoteError{Kind: adapter.KindGone, StatusCode: 410, Message: "deleted"}
	errServer   = &adapter.RemoteError{Kind: adapter.KindServer, StatusCode: 503, Message: "unavailable"}
	errOffline  = &adapter.RemoteError{Kind: adapter.KindNetwork, Message: "dial tcp: connection refused"}
)

func newTestQueue(t *testing.T, opts store.QueueOptions) *store.MutationQueue {
	t.Helper()
	q, err := store.NewMutationQueue(context.Background(), store.NewMemoryKeyValueStore(), opts, logger.Nop())
	require.NoError(t, err)
	return q
}

var errDiskHiccup = errors.New("disk hiccup")

// hiccupKV fails the next failPuts writes.
type hiccupKV struct {
	*store.MemoryKeyValueStore

	mu       sync.Mutex
	failPuts int
}

func newHiccupKV() *hiccupKV {
	return &hiccupKV{MemoryKeyValueStore: store.NewMemoryKeyValueStore()}
}

func (k *hiccupKV) failNextPuts(n int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failPuts = n
}

func (k *hiccupKV) Put(ctx context.Context, key, value string) error {
	k.mu.Lock()
	if k.failPuts > 0 {
		k.failPuts--
		k.mu.Unlock()
		return errDiskHiccup
	}
	k.mu.Unlock()
	return k.MemoryKeyValueStore.Put(ctx, key, value)
}

func enqueue(t *testing.T, q *store.MutationQueue, endpoint, body string) models.Mutation {
	t.Helper()
	m, err := q.Enqueue(context.Background(), models.Mutation{
		Endpoint: endpoint,
		Method:   "PUT",
		Body:     json.RawMessage(body),
	})
	require.NoError(t, err)
	return m
}

func fastEngineOptions() SyncEngineOptions {
	return SyncEngineOptions{BackoffBase: time.Millisecond}
}

// fakeReconnects is a ReconnectSource driven by the test.
type fakeReconnects struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func (f *fakeReconnects) Reconnects() (<-chan struct{}, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{}, 1)
	f.subs = append(f.subs, ch)
	return ch, func() {}
}

func (f *fakeReconnects) fire() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (f *fakeReconnects) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// stubEngine counts drains.
type stubEngine struct {
	SyncEngine
	mu    sync.Mutex
	calls int
	err   error
	order *[]string
}

func (s *stubEngine) ProcessQueue(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.order != nil {
		*s.order = append(*s.order, "drain")
	}
	return s.err
}

func (s *stubEngine) drains() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// stubLoader records invalidations.
type stubLoader struct {
	DataLoader
	mu          sync.Mutex
	invalidated int
	order       *[]string
}

func (s *stubLoader) InvalidateRecent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
	if s.order != nil {
		*s.order = append(*s.order, "invalidate")
	}
}

func (s *stubLoader) invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// stubDataSync counts delta syncs.
type stubDataSync struct {
	DataSyncService
	mu     sync.Mutex
	deltas int
}

func (s *stubDataSync) DeltaSync(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deltas++
	return nil
}

func (s *stubDataSync) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deltas
}
