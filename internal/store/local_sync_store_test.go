// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() models.Bundle {
	return models.Bundle{
		Menu:              json.RawMessage(`[{"id":"home"}]`),
		Permissions:       []string{"read", "write"},
		AvailableContexts: []json.RawMessage{json.RawMessage(`{"id":"t1"}`)},
		Screens: map[string]json.RawMessage{
			"materials": json.RawMessage(`{"title":"Materials"}`),
			"orders":    json.RawMessage(`{"title":"Orders"}`),
		},
		Hashes: map[string]string{
			models.BucketMenu:              "h-menu",
			models.BucketPermissions:       "h-perm",
			models.BucketAvailableContexts: "h-ctx",
			"screen:materials":             "h-mat",
			"screen:orders":                "h-ord",
		},
		SyncedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestLocalSyncStore_SaveLoadBundle(t *testing.T) {
	ctx := context.Background()
	s := NewLocalSyncStore(NewMemoryKeyValueStore(), logger.Nop())

	_, ok, err := s.LoadBundle(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := testBundle()
	require.NoError(t, s.SaveBundle(ctx, want))

	got, ok, err := s.LoadBundle(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.JSONEq(t, string(want.Menu), string(got.Menu))
	assert.Equal(t, want.Permissions, got.Permissions)
	require.Len(t, got.AvailableContexts, 1)
	assert.JSONEq(t, `{"id":"t1"}`, string(got.AvailableContexts[0]))
	assert.Len(t, got.Screens, 2)
	assert.JSONEq(t, `{"title":"Orders"}`, string(got.Screens["orders"]))
	assert.Equal(t, want.Hashes, got.Hashes)
	assert.True(t, want.SyncedAt.Equal(got.SyncedAt))

	keys, err := s.ScreenKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"materials", "orders"}, keys)
}

func TestLocalSyncStore_SaveBundleDropsOldScreens(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	s := NewLocalSyncStore(kv, logger.Nop())

	require.NoError(t, s.SaveBundle(ctx, testBundle()))

	next := testBundle()
	delete(next.Screens, "orders")
	delete(next.Hashes, "screen:orders")
	require.NoError(t, s.SaveBundle(ctx, next))

	_, ok, err := s.Screen(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := s.ScreenKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"materials"}, keys)
}

func TestLocalSyncStore_UpdateBucket(t *testing.T) {
	ctx := context.Background()
	s := NewLocalSyncStore(NewMemoryKeyValueStore(), logger.Nop())
	require.NoError(t, s.SaveBundle(ctx, testBundle()))

	require.NoError(t, s.UpdateBucket(ctx, models.BucketMenu, json.RawMessage(`[{"id":"new"}]`), "h-menu-2"))
	require.NoError(t, s.UpdateBucket(ctx, "screen:reports", json.RawMessage(`{"title":"Reports"}`), "h-rep"))

	hashes, err := s.Hashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h-menu-2", hashes[models.BucketMenu])
	assert.Equal(t, "h-rep", hashes["screen:reports"])
	assert.Equal(t, "h-perm", hashes[models.BucketPermissions])

	keys, err := s.ScreenKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"materials", "orders", "reports"}, keys)

	b, _, err := s.LoadBundle(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"new"}]`, string(b.Menu))
	assert.JSONEq(t, `{"title":"Reports"}`, string(b.Screens["reports"]))
}

func TestLocalSyncStore_UpdateBucketUnknown(t *testing.T) {
	s := NewLocalSyncStore(NewMemoryKeyValueStore(), logger.Nop())

	err := s.UpdateBucket(context.Background(), "widgets", json.RawMessage(`[]`), "h")
	assert.ErrorIs(t, err, ErrUnknownBucket)

	err = s.UpdateBucket(context.Background(), "screen:", json.RawMessage(`{}`), "h")
	assert.ErrorIs(t, err, ErrUnknownBucket)
}

func TestLocalSyncStore_ContentWrittenBeforeHash(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	s := NewLocalSyncStore(kv, logger.Nop())
	require.NoError(t, s.SaveBundle(ctx, testBundle()))

	// one hash entry keeps the final write predictable
	require.NoError(t, kv.Put(ctx, "sync:hashes", `{"menu":"h-menu"}`))
	before := kv.putCalls

	err := s.UpdateBucket(ctx, models.BucketMenu, json.RawMessage(`["x"]`), "h-new")
	require.NoError(t, err)
	assert.Equal(t, before+2, kv.putCalls, "content then hashes")
	assert.Equal(t, `{"menu":"h-new"}`, kv.lastValue)
}

func TestLocalSyncStore_RemoveScreen(t *testing.T) {
	ctx := context.Background()
	s := NewLocalSyncStore(NewMemoryKeyValueStore(), logger.Nop())
	require.NoError(t, s.SaveBundle(ctx, testBundle()))

	require.NoError(t, s.RemoveScreen(ctx, "orders"))

	keys, err := s.ScreenKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"materials"}, keys)

	hashes, err := s.Hashes(ctx)
	require.NoError(t, err)
	assert.NotContains(t, hashes, "screen:orders")

	require.NoError(t, s.RemoveScreen(ctx, "never-existed"))
}

func TestLocalSyncStore_SyncedAt(t *testing.T) {
	ctx := context.Background()
	s := NewLocalSyncStore(NewMemoryKeyValueStore(), logger.Nop())

	_, ok, err := s.LastSyncedAt(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2026, 7, 7, 7, 7, 7, 7, time.UTC)
	require.NoError(t, s.SetSyncedAt(ctx, at))

	got, ok, err := s.LastSyncedAt(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(got))
}

func TestLocalSyncStore_CorruptHashes(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	require.NoError(t, kv.Put(ctx, "sync:hashes", "nope"))

	s := NewLocalSyncStore(kv, logger.Nop())
	_, err := s.Hashes(ctx)
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestLocalSyncStore_Clear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	require.NoError(t, kv.Put(ctx, QueueKey, "[]"))

	s := NewLocalSyncStore(kv, logger.Nop())
	require.NoError(t, s.SaveBundle(ctx, testBundle()))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, 1, kv.Len(), "only non-sync keys remain")

	hashes, err := s.Hashes(ctx)
	require.NoError(t, err)
	assert.Empty(t, hashes)
}
