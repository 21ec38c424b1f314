// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/observe"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

type dataSyncService struct {
	remote  adapter.BundleRemote
	store   LocalSyncStore
	screens *ScreenCache
	now     func() time.Time

	mu    sync.Mutex
	state *observe.Value[models.SyncState]

	logger *logger.Logger
}

// NewDataSyncService creates the bundle sync. screens is seeded on every
// full sync and may be shared with readers.
func NewDataSyncService(remote adapter.BundleRemote, localStore LocalSyncStore, screens *ScreenCache, log *logger.Logger) DataSyncService {
	if screens == nil {
		screens = NewScreenCache()
	}
	return &dataSyncService{
		remote:  remote,
		store:   localStore,
		screens: screens,
		now:     time.Now,
		state:   observe.NewValue(models.IdleState()),
		logger:  log.WithComponent("data_sync"),
	}
}

func (s *dataSyncService) FullSync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullSync(ctx)
}

func (s *dataSyncService) fullSync(ctx context.Context) error {
	s.state.Set(models.SyncingState(0, 0))

	b, err := s.remote.GetBundle(ctx)
	if err != nil {
		return s.serveStored(ctx, err)
	}

	b.SyncedAt = s.now()
	fillHashes(&b)

	if err = s.store.SaveBundle(ctx, b); err != nil {
		s.state.Set(models.ErrorState(err.Error()))
		return fmt.Errorf("save bundle: %w", err)
	}
	s.screens.Seed(b.Screens)

	s.logger.Info().Str("func", "dataSyncService.FullSync").Int("screens", len(b.Screens)).Msg("bundle synced")
	s.state.Set(models.SyncedState(b.SyncedAt))
	return nil
}

// serveStored falls back to the stored bundle after a failed download.
func (s *dataSyncService) serveStored(ctx context.Context, cause error) error {
	b, ok, err := s.store.LoadBundle(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "dataSyncService.serveStored").Msg("failed to read stored bundle")
	}
	if err != nil || !ok {
		s.state.Set(models.ErrorState(cause.Error()))
		return fmt.Errorf("%w: %w", ErrNoBundle, cause)
	}

	s.screens.Seed(b.Screens)
	s.logger.Warn().Err(cause).Str("func", "dataSyncService.serveStored").Time("synced_at", b.SyncedAt).Msg("bundle download failed, serving stored bundle")
	s.state.Set(models.StaleState(b.SyncedAt))
	return nil
}

func (s *dataSyncService) DeltaSync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hashes, err := s.store.Hashes(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "dataSyncService.DeltaSync").Msg("stored hashes unreadable, running full sync")
	}
	if len(hashes) == 0 {
		return s.fullSync(ctx)
	}

	s.state.Set(models.SyncingState(0, 0))

	delta, err := s.remote.DeltaSync(ctx, hashes)
	if err != nil {
		last, _, lastErr := s.store.LastSyncedAt(ctx)
		if lastErr != nil {
			s.logger.Err(lastErr).Str("func", "dataSyncService.DeltaSync").Msg("failed to read last sync time")
		}
		s.logger.Warn().Err(err).Str("func", "dataSyncService.DeltaSync").Msg("delta sync failed, data is stale")
		s.state.Set(models.StaleState(last))
		return nil
	}

	buckets := slices.Sorted(maps.Keys(delta.Changed))
	for i, bucket := range buckets {
		s.state.Set(models.SyncingState(i+1, len(buckets)))
		if err = s.applyBucket(ctx, bucket, delta.Changed[bucket]); err != nil {
			s.state.Set(models.ErrorState(err.Error()))
			return err
		}
	}

	now := s.now()
	if err = s.store.SetSyncedAt(ctx, now); err != nil {
		s.state.Set(models.ErrorState(err.Error()))
		return fmt.Errorf("record sync time: %w", err)
	}

	s.logger.Info().Str("func", "dataSyncService.DeltaSync").Int("changed", len(buckets)).Msg("delta applied")
	s.state.Set(models.SyncedState(now))
	return nil
}

// applyBucket stores one changed bucket. Content of the wrong shape and
// unknown buckets are logged and skipped; only storage errors are returned.
// A screen bucket with null data is a removed screen.
func (s *dataSyncService) applyBucket(ctx context.Context, bucket string, d models.BucketDelta) error {
	log := s.logger.With().Str("bucket", bucket).Logger()

	if key, ok := models.ScreenKey(bucket); ok && isNull(d.Data) {
		if err := s.store.RemoveScreen(ctx, key); err != nil {
			return fmt.Errorf("remove screen %q: %w", key, err)
		}
		s.screens.Remove(key)
		return nil
	}

	if err := validateBucket(bucket, d.Data); err != nil {
		log.Warn().Err(err).Str("func", "dataSyncService.applyBucket").Msg("skipping bucket")
		return nil
	}

	hash := d.Hash
	if hash == "" {
		hash = utils.ContentHash(d.Data)
	}
	if err := s.store.UpdateBucket(ctx, bucket, d.Data, hash); err != nil {
		return fmt.Errorf("update bucket %q: %w", bucket, err)
	}

	if key, ok := models.ScreenKey(bucket); ok {
		s.screens.Set(key, d.Data)
	}
	return nil
}

func (s *dataSyncService) State() models.SyncState {
	return s.state.Get()
}

func (s *dataSyncService) SubscribeState() (<-chan models.SyncState, func()) {
	return s.state.Subscribe()
}

func (s *dataSyncService) Screens() map[string]json.RawMessage {
	return s.screens.Snapshot()
}

func (s *dataSyncService) Bundle(ctx context.Context) (models.Bundle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadBundle(ctx)
}

// validateBucket checks content against the shape its bucket name implies.
func validateBucket(bucket string, data json.RawMessage) error {
	var err error
	switch bucket {
	case models.BucketMenu:
		var v []json.RawMessage
		err = json.Unmarshal(data, &v)
	case models.BucketPermissions:
		var v []string
		err = json.Unmarshal(data, &v)
	case models.BucketAvailableContexts:
		var v []map[string]json.RawMessage
		err = json.Unmarshal(data, &v)
	default:
		if _, ok := models.ScreenKey(bucket); !ok {
			return fmt.Errorf("%w: unknown bucket %q", ErrInvalidBucket, bucket)
		}
		var v map[string]json.RawMessage
		err = json.Unmarshal(data, &v)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBucket, err)
	}
	if isNull(data) {
		return fmt.Errorf("%w: null content", ErrInvalidBucket)
	}
	return nil
}

// fillHashes keeps exactly one hash per bucket of b: hashes naming no bucket
// are dropped and missing ones are computed.
func fillHashes(b *models.Bundle) {
	if b.Hashes == nil {
		b.Hashes = make(map[string]string)
	}
	for bucket := range b.Hashes {
		if !hasBucket(b, bucket) {
			delete(b.Hashes, bucket)
		}
	}
	set := func(bucket string, v any) {
		if b.Hashes[bucket] != "" {
			return
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return
		}
		b.Hashes[bucket] = utils.ContentHash(raw)
	}

	set(models.BucketMenu, b.Menu)
	set(models.BucketPermissions, b.Permissions)
	set(models.BucketAvailableContexts, b.AvailableContexts)
	for key, content := range b.Screens {
		set(models.ScreenBucket(key), content)
	}
}

func hasBucket(b *models.Bundle, bucket string) bool {
	switch bucket {
	case models.BucketMenu, models.BucketPermissions, models.BucketAvailableContexts:
		return true
	}
	key, ok := models.ScreenKey(bucket)
	if !ok {
		return false
	}
	_, ok = b.Screens[key]
	return ok
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}
