// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	syncKeyPrefix         = "sync:"
	syncMenuKey           = syncKeyPrefix + models.BucketMenu
	syncPermissionsKey    = syncKeyPrefix + models.BucketPermissions
	syncContextsKey       = syncKeyPrefix + models.BucketAvailableContexts
	syncScreenIndexKey    = syncKeyPrefix + "screen_index"
	syncHashesKey         = syncKeyPrefix + "hashes"
	syncSyncedAtKey       = syncKeyPrefix + "synced_at"
	syncScreenKeyTemplate = syncKeyPrefix + models.ScreenBucketPrefix
)

// LocalSyncStore persists the reference-data bundle bucket by bucket.
//
// Each bucket is written content first, then the screen index, then the
// hash map. A crash in between leaves an old hash next to new content, so
// the next delta sync fetches that bucket again. The store is not safe for
// concurrent writers; callers serialize access.
type LocalSyncStore struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewLocalSyncStore(kv KeyValueStore, log *logger.Logger) *LocalSyncStore {
	return &LocalSyncStore{kv: kv, logger: log}
}

// SaveBundle replaces the stored bundle. Screens missing from b are removed.
func (s *LocalSyncStore) SaveBundle(ctx context.Context, b models.Bundle) error {
	if err := s.putRaw(ctx, syncMenuKey, b.Menu); err != nil {
		return err
	}
	if err := s.putJSON(ctx, syncPermissionsKey, nonNil(b.Permissions)); err != nil {
		return err
	}
	if err := s.putJSON(ctx, syncContextsKey, nonNil(b.AvailableContexts)); err != nil {
		return err
	}

	oldKeys, err := s.ScreenKeys(ctx)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(b.Screens))
	for key, content := range b.Screens {
		if err = s.putRaw(ctx, screenStorageKey(key), content); err != nil {
			return err
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	if err = s.putJSON(ctx, syncScreenIndexKey, keys); err != nil {
		return err
	}

	for _, key := range oldKeys {
		if _, ok := b.Screens[key]; !ok {
			if err = s.remove(ctx, screenStorageKey(key)); err != nil {
				return err
			}
		}
	}

	hashes := b.Hashes
	if hashes == nil {
		hashes = map[string]string{}
	}
	if err = s.putJSON(ctx, syncHashesKey, hashes); err != nil {
		return err
	}

	syncedAt := b.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = time.Now()
	}
	return s.SetSyncedAt(ctx, syncedAt)
}

// LoadBundle reads the stored bundle. ok is false when nothing was ever
// saved.
func (s *LocalSyncStore) LoadBundle(ctx context.Context) (b models.Bundle, ok bool, err error) {
	syncedAt, ok, err := s.LastSyncedAt(ctx)
	if err != nil || !ok {
		return models.Bundle{}, false, err
	}
	b.SyncedAt = syncedAt

	if raw, found, err := s.getRaw(ctx, syncMenuKey); err != nil {
		return models.Bundle{}, false, err
	} else if found {
		b.Menu = raw
	}

	if _, err = s.getJSON(ctx, syncPermissionsKey, &b.Permissions); err != nil {
		return models.Bundle{}, false, err
	}
	if _, err = s.getJSON(ctx, syncContextsKey, &b.AvailableContexts); err != nil {
		return models.Bundle{}, false, err
	}

	keys, err := s.ScreenKeys(ctx)
	if err != nil {
		return models.Bundle{}, false, err
	}
	b.Screens = make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		content, found, err := s.Screen(ctx, key)
		if err != nil {
			return models.Bundle{}, false, err
		}
		if found {
			b.Screens[key] = content
		}
	}

	if b.Hashes, err = s.Hashes(ctx); err != nil {
		return models.Bundle{}, false, err
	}

	return b, true, nil
}

// Hashes returns the stored bucket hashes, empty when none are stored.
func (s *LocalSyncStore) Hashes(ctx context.Context) (map[string]string, error) {
	hashes := map[string]string{}
	if _, err := s.getJSON(ctx, syncHashesKey, &hashes); err != nil {
		return nil, err
	}
	if hashes == nil {
		hashes = map[string]string{}
	}
	return hashes, nil
}

// UpdateBucket stores new content for one bucket and then its hash.
func (s *LocalSyncStore) UpdateBucket(ctx context.Context, bucket string, content json.RawMessage, hash string) error {
	switch bucket {
	case models.BucketMenu:
		if err := s.putRaw(ctx, syncMenuKey, content); err != nil {
			return err
		}
	case models.BucketPermissions:
		if err := s.putRaw(ctx, syncPermissionsKey, content); err != nil {
			return err
		}
	case models.BucketAvailableContexts:
		if err := s.putRaw(ctx, syncContextsKey, content); err != nil {
			return err
		}
	default:
		key, ok := models.ScreenKey(bucket)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
		}
		if err := s.putRaw(ctx, screenStorageKey(key), content); err != nil {
			return err
		}
		if err := s.addScreenKey(ctx, key); err != nil {
			return err
		}
	}

	return s.setHash(ctx, bucket, hash)
}

// RemoveScreen deletes a screen, its index entry and its hash.
func (s *LocalSyncStore) RemoveScreen(ctx context.Context, key string) error {
	if err := s.remove(ctx, screenStorageKey(key)); err != nil {
		return err
	}

	keys, err := s.ScreenKeys(ctx)
	if err != nil {
		return err
	}
	if i := slices.Index(keys, key); i >= 0 {
		if err = s.putJSON(ctx, syncScreenIndexKey, slices.Delete(keys, i, i+1)); err != nil {
			return err
		}
	}

	hashes, err := s.Hashes(ctx)
	if err != nil {
		return err
	}
	bucket := models.ScreenBucket(key)
	if _, ok := hashes[bucket]; !ok {
		return nil
	}
	delete(hashes, bucket)
	return s.putJSON(ctx, syncHashesKey, hashes)
}

func (s *LocalSyncStore) LastSyncedAt(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.kv.Get(ctx, syncSyncedAtKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %s: %w", ErrCorruptState, syncSyncedAtKey, err)
	}
	return t, true, nil
}

func (s *LocalSyncStore) SetSyncedAt(ctx context.Context, t time.Time) error {
	return s.kv.Put(ctx, syncSyncedAtKey, t.UTC().Format(time.RFC3339Nano))
}

// Screen returns the stored definition of one screen.
func (s *LocalSyncStore) Screen(ctx context.Context, key string) (json.RawMessage, bool, error) {
	return s.getRaw(ctx, screenStorageKey(key))
}

// ScreenKeys lists stored screens from the explicit index, sorted.
func (s *LocalSyncStore) ScreenKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if _, err := s.getJSON(ctx, syncScreenIndexKey, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Clear removes every sync key.
func (s *LocalSyncStore) Clear(ctx context.Context) error {
	keys, err := s.ScreenKeys(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "LocalSyncStore.Clear").Msg("screen index unreadable, clearing without it")
	}

	for _, key := range keys {
		if err = s.remove(ctx, screenStorageKey(key)); err != nil {
			return err
		}
	}
	for _, key := range []string{syncMenuKey, syncPermissionsKey, syncContextsKey, syncScreenIndexKey, syncHashesKey, syncSyncedAtKey} {
		if err = s.remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *LocalSyncStore) addScreenKey(ctx context.Context, key string) error {
	keys, err := s.ScreenKeys(ctx)
	if err != nil {
		return err
	}
	i, found := slices.BinarySearch(keys, key)
	if found {
		return nil
	}
	return s.putJSON(ctx, syncScreenIndexKey, slices.Insert(keys, i, key))
}

func (s *LocalSyncStore) setHash(ctx context.Context, bucket, hash string) error {
	hashes, err := s.Hashes(ctx)
	if err != nil {
		return err
	}
	hashes[bucket] = hash
	return s.putJSON(ctx, syncHashesKey, hashes)
}

func (s *LocalSyncStore) putRaw(ctx context.Context, key string, raw json.RawMessage) error {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := s.kv.Put(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *LocalSyncStore) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.putRaw(ctx, key, data)
}

func (s *LocalSyncStore) getRaw(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return json.RawMessage(raw), true, nil
}

func (s *LocalSyncStore) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.getRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrCorruptState, key, err)
	}
	return true, nil
}

func (s *LocalSyncStore) remove(ctx context.Context, key string) error {
	if err := s.kv.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func screenStorageKey(key string) string {
	return syncScreenKeyTemplate + key
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
