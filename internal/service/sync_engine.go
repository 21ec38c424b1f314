// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/network"
	"github.com/MKhiriev/go-offline-sync/internal/observe"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/sethvargo/go-retry"
)

const (
	DefaultBackoffBase   = time.Second
	DefaultRetryAttempts = 3
)

// SyncEngineOptions tunes the in-pass retry of failed submissions.
type SyncEngineOptions struct {
	// BackoffBase is the first backoff delay; each retry doubles it.
	BackoffBase time.Duration
	// RetryAttempts is the number of submissions after the first one.
	RetryAttempts int
}

func (o SyncEngineOptions) withDefaults() SyncEngineOptions {
	if o.BackoffBase <= 0 {
		o.BackoffBase = DefaultBackoffBase
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = DefaultRetryAttempts
	}
	return o
}

type syncEngine struct {
	queue    MutationQueue
	remote   adapter.RemoteWriter
	resolver ConflictResolver
	opts     SyncEngineOptions

	drainMu   sync.Mutex
	state     *observe.Value[models.SyncState]
	conflicts *observe.Feed[models.ConflictEvent]

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncEngine creates an engine draining queue into remote. A nil
// resolver means last-write-wins.
func NewSyncEngine(queue MutationQueue, remote adapter.RemoteWriter, resolver ConflictResolver, opts SyncEngineOptions, log *logger.Logger) SyncEngine {
	if resolver == nil {
		resolver = NewLastWriteWinsResolver()
	}
	return &syncEngine{
		queue:     queue,
		remote:    remote,
		resolver:  resolver,
		opts:      opts.withDefaults(),
		state:     observe.NewValue(models.IdleState()),
		conflicts: observe.NewFeed[models.ConflictEvent](observe.DefaultFeedBuffer),
		logger:    log.WithComponent("sync_engine"),
	}
}

func (e *syncEngine) ProcessQueue(ctx context.Context) error {
	e.drainMu.Lock()
	defer e.drainMu.Unlock()

	// No claim is held between drains; SYNCING leftovers come from a pass
	// whose bookkeeping write failed.
	if n, err := e.queue.RequeueSyncing(ctx); err != nil {
		e.logger.Err(err).Str("func", "syncEngine.ProcessQueue").Msg("failed to requeue interrupted mutations")
	} else if n > 0 {
		e.logger.Info().Str("func", "syncEngine.ProcessQueue").Int("count", n).Msg("requeued interrupted mutations")
	}

	ids := e.queue.PendingIDs()
	if len(ids) == 0 {
		e.state.Set(models.IdleState())
		return nil
	}

	total := len(ids)
	e.logger.Info().Str("func", "syncEngine.ProcessQueue").Int("pending", total).Msg("draining mutation queue")

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			e.finish()
			return err
		}

		m, err := e.queue.Claim(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrMutationNotFound) || errors.Is(err, store.ErrInvalidTransition) {
				// removed or already handled since the snapshot
				continue
			}
			e.finish()
			return fmt.Errorf("claim mutation %s: %w", id, err)
		}

		e.state.Set(models.SyncingState(i+1, total))

		if err = e.process(ctx, m); err != nil {
			e.finish()
			return err
		}
	}

	e.finish()
	return nil
}

func (e *syncEngine) finish() {
	if n := e.queue.PendingCount(); n > 0 {
		e.state.Set(models.ErrorState(fmt.Sprintf("%d mutations still pending", n)))
		return
	}
	e.state.Set(models.CompletedState())
}

// process delivers one claimed mutation. Queue bookkeeping runs on a
// context that survives cancellation so a claimed mutation is never left
// SYNCING.
func (e *syncEngine) process(ctx context.Context, m models.Mutation) error {
	storeCtx := context.WithoutCancel(ctx)
	log := e.logger.With().Str("mutation_id", m.ID).Str("endpoint", m.Endpoint).Logger()

	err := e.submitWithRetry(ctx, m.SubmitRequest())
	switch {
	case err == nil:
		log.Debug().Str("func", "syncEngine.process").Msg("mutation delivered")
		return e.queue.Remove(storeCtx, m.ID)
	case ctx.Err() != nil:
		if relErr := e.queue.Release(storeCtx, m.ID); relErr != nil {
			log.Err(relErr).Str("func", "syncEngine.process").Msg("failed to release mutation")
		}
		return ctx.Err()
	case adapter.IsConflict(err):
		return e.resolveConflict(ctx, m, false)
	case adapter.IsEntityDeleted(err):
		return e.resolveConflict(ctx, m, true)
	}

	log.Warn().Err(err).Str("func", "syncEngine.process").Msg("mutation delivery failed")
	updated, markErr := e.queue.MarkFailed(storeCtx, m.ID)
	if markErr != nil {
		return fmt.Errorf("mark mutation %s failed: %w", m.ID, markErr)
	}
	if updated.Status == models.MutationFailed {
		log.Error().Str("func", "syncEngine.process").Int("retry_count", updated.RetryCount).Msg("mutation exhausted its retries")
	}
	return nil
}

// submitWithRetry submits once and then retries with exponential backoff.
// Conflict and entity-deleted answers stop the retries immediately.
func (e *syncEngine) submitWithRetry(ctx context.Context, req models.SubmitRequest) error {
	b := retry.WithMaxRetries(uint64(e.opts.RetryAttempts), retry.NewExponential(e.opts.BackoffBase))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		_, err := e.remote.Submit(ctx, req)
		if err == nil {
			return nil
		}
		if adapter.IsConflict(err) || adapter.IsEntityDeleted(err) || ctx.Err() != nil {
			return err
		}
		e.logger.Debug().Err(err).Str("func", "syncEngine.submitWithRetry").Str("endpoint", req.Endpoint).Msg("submit failed, backing off")
		return retry.RetryableError(err)
	})
}

func (e *syncEngine) resolveConflict(ctx context.Context, m models.Mutation, entityDeleted bool) error {
	storeCtx := context.WithoutCancel(ctx)
	log := e.logger.With().Str("mutation_id", m.ID).Str("endpoint", m.Endpoint).Logger()

	decision := e.resolver.Resolve(m, entityDeleted)
	e.conflicts.Publish(decision.Event)

	switch decision.Resolution {
	case models.ResolutionSkip:
		log.Info().Str("func", "syncEngine.resolveConflict").Msg("entity deleted on server, dropping mutation")
		return e.queue.Remove(storeCtx, m.ID)

	case models.ResolutionRetryWithoutCheck:
		_, err := e.remote.Submit(ctx, m.SubmitRequest().WithoutPrecondition())
		if err == nil {
			log.Info().Str("func", "syncEngine.resolveConflict").Str("strategy", decision.Event.Strategy).Msg("conflict resolved")
			return e.queue.Remove(storeCtx, m.ID)
		}
		if ctx.Err() != nil {
			if relErr := e.queue.Release(storeCtx, m.ID); relErr != nil {
				log.Err(relErr).Str("func", "syncEngine.resolveConflict").Msg("failed to release mutation")
			}
			return ctx.Err()
		}
		log.Warn().Err(err).Str("func", "syncEngine.resolveConflict").Msg("resubmission failed, mutation conflicted")
		_, err = e.queue.MarkConflicted(storeCtx, m.ID)
		return err
	}

	return fmt.Errorf("unknown conflict resolution %s", decision.Resolution)
}

func (e *syncEngine) Start(ctx context.Context, source network.ReconnectSource) {
	e.Stop()

	e.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	edges, unsubscribe := source.Reconnects()
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()
		defer unsubscribe()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-edges:
				if err := e.ProcessQueue(runCtx); err != nil && runCtx.Err() == nil {
					e.logger.Err(err).Str("func", "syncEngine.Start").Msg("queue drain after reconnect failed")
				}
			}
		}
	}()
}

func (e *syncEngine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
}

func (e *syncEngine) State() models.SyncState {
	return e.state.Get()
}

func (e *syncEngine) SubscribeState() (<-chan models.SyncState, func()) {
	return e.state.Subscribe()
}

func (e *syncEngine) SubscribeConflicts() (<-chan models.ConflictEvent, func()) {
	return e.conflicts.Subscribe()
}

func (e *syncEngine) PendingCount() int {
	return e.queue.PendingCount()
}
