// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	// QueueKey is the durable key holding the serialized queue.
	QueueKey = "queue:mutations"

	DefaultQueueCapacity = 1000
	DefaultMaxRetries    = 3
)

// QueueOptions configures a [MutationQueue]. Zero values take the defaults.
type QueueOptions struct {
	Capacity   int
	MaxRetries int

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string
}

func (o QueueOptions) withDefaults() QueueOptions {
	if o.Capacity <= 0 {
		o.Capacity = DefaultQueueCapacity
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = utils.NewUUIDGenerator().Generate
	}
	return o
}

// MutationQueue is the persistent FIFO of writes waiting for the remote
// service.
//
// Every operation, including its persistence write, runs under one mutex.
// The whole queue is rewritten to [QueueKey] after each change; if that
// write fails the in-memory change is rolled back and the error returned,
// so memory never runs ahead of storage.
type MutationQueue struct {
	mu    sync.Mutex
	kv    KeyValueStore
	items []models.Mutation
	opts  QueueOptions

	logger *logger.Logger
}

// NewMutationQueue restores the queue from kv.
//
// Unreadable persisted data is discarded with a warning and the queue starts
// empty. Mutations restored as SYNCING were interrupted mid-submit and are
// put back to PENDING.
func NewMutationQueue(ctx context.Context, kv KeyValueStore, opts QueueOptions, log *logger.Logger) (*MutationQueue, error) {
	q := &MutationQueue{kv: kv, opts: opts.withDefaults(), logger: log}

	raw, ok, err := kv.Get(ctx, QueueKey)
	if err != nil {
		return nil, fmt.Errorf("restore mutation queue: %w", err)
	}
	if !ok {
		return q, nil
	}

	var items []models.Mutation
	if err = json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Str("func", "NewMutationQueue").Msg("discarding corrupt mutation queue")
		if rmErr := kv.Remove(ctx, QueueKey); rmErr != nil {
			log.Err(rmErr).Str("func", "NewMutationQueue").Msg("failed to remove corrupt mutation queue")
		}
		return q, nil
	}

	reset := resetSyncing(items)
	q.items = items

	if reset > 0 {
		log.Info().Str("func", "NewMutationQueue").Int("count", reset).
			Msg("requeued mutations interrupted while syncing")
		if err = q.persist(ctx); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// Enqueue appends m.
//
// It fills the id, creation time, PENDING status and retry limit when they
// are missing. It returns [ErrQueueFull] at capacity and
// [ErrDuplicateMutation] when a pending mutation with the same fingerprint
// is queued; in both cases the queue is unchanged.
func (q *MutationQueue) Enqueue(ctx context.Context, m models.Mutation) (models.Mutation, error) {
	if strings.TrimSpace(m.Endpoint) == "" {
		return models.Mutation{}, fmt.Errorf("%w: empty endpoint", ErrInvalidMutation)
	}

	m.Method = strings.ToUpper(strings.TrimSpace(m.Method))
	if m.Method == "" {
		m.Method = http.MethodPost
	}
	if m.ID == "" {
		m.ID = q.opts.NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = q.opts.Now().UTC()
	}
	if m.MaxRetries <= 0 {
		m.MaxRetries = q.opts.MaxRetries
	}
	m.Status = models.MutationPending
	m.RetryCount = 0

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) >= q.opts.Capacity {
		return models.Mutation{}, ErrQueueFull
	}

	fp := m.Fingerprint()
	for _, it := range q.items {
		if it.ID == m.ID {
			return models.Mutation{}, fmt.Errorf("%w: id %s already queued", ErrDuplicateMutation, m.ID)
		}
		if it.Status == models.MutationPending && it.Fingerprint() == fp {
			return models.Mutation{}, ErrDuplicateMutation
		}
	}

	err := q.commit(ctx, func() error {
		q.items = append(q.items, m)
		return nil
	})
	if err != nil {
		return models.Mutation{}, err
	}

	q.logger.Debug().Str("func", "MutationQueue.Enqueue").Str("mutation_id", m.ID).
		Str("endpoint", m.Endpoint).Str("method", m.Method).Msg("mutation queued")
	return m, nil
}

// Dequeue hands out the oldest PENDING mutation and marks it SYNCING.
// ok is false when nothing is pending.
func (q *MutationQueue) Dequeue(ctx context.Context) (m models.Mutation, ok bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := slices.IndexFunc(q.items, func(it models.Mutation) bool {
		return it.Status == models.MutationPending
	})
	if i < 0 {
		return models.Mutation{}, false, nil
	}

	err = q.commit(ctx, func() error {
		q.items[i].Status = models.MutationSyncing
		return nil
	})
	if err != nil {
		return models.Mutation{}, false, err
	}
	return q.items[i], true, nil
}

// Claim marks the PENDING mutation id as SYNCING and returns it.
func (q *MutationQueue) Claim(ctx context.Context, id string) (models.Mutation, error) {
	return q.transition(ctx, id, func(m *models.Mutation) error {
		if m.Status != models.MutationPending {
			return fmt.Errorf("%w: claim %s mutation", ErrInvalidTransition, m.Status)
		}
		m.Status = models.MutationSyncing
		return nil
	})
}

// Peek returns the oldest PENDING mutation without changing it.
func (q *MutationQueue) Peek() (models.Mutation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, it := range q.items {
		if it.Status == models.MutationPending {
			return it, true
		}
	}
	return models.Mutation{}, false
}

// Release puts a SYNCING mutation back to PENDING without counting an
// attempt. Releasing a PENDING mutation is a no-op.
func (q *MutationQueue) Release(ctx context.Context, id string) error {
	_, err := q.transition(ctx, id, func(m *models.Mutation) error {
		switch m.Status {
		case models.MutationSyncing:
			m.Status = models.MutationPending
			return nil
		case models.MutationPending:
			return errNoChange
		default:
			return fmt.Errorf("%w: release %s mutation", ErrInvalidTransition, m.Status)
		}
	})
	return err
}

// MarkFailed records a failed attempt on a SYNCING or PENDING mutation. The
// mutation becomes FAILED once RetryCount reaches MaxRetries and PENDING
// otherwise.
func (q *MutationQueue) MarkFailed(ctx context.Context, id string) (models.Mutation, error) {
	return q.transition(ctx, id, func(m *models.Mutation) error {
		if m.Status != models.MutationSyncing && m.Status != models.MutationPending {
			return fmt.Errorf("%w: mark %s mutation failed", ErrInvalidTransition, m.Status)
		}
		m.RetryCount++
		if m.RetryCount >= m.MaxRetries {
			m.Status = models.MutationFailed
		} else {
			m.Status = models.MutationPending
		}
		return nil
	})
}

// MarkConflicted parks the mutation outside the retry cycle.
func (q *MutationQueue) MarkConflicted(ctx context.Context, id string) (models.Mutation, error) {
	return q.transition(ctx, id, func(m *models.Mutation) error {
		m.Status = models.MutationConflicted
		return nil
	})
}

// RequeueSyncing puts every SYNCING mutation back to PENDING without
// counting an attempt and returns how many were requeued. It must only be
// called while no drain holds a claim.
func (q *MutationQueue) RequeueSyncing(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	err := q.commit(ctx, func() error {
		n = resetSyncing(q.items)
		if n == 0 {
			return errNoChange
		}
		return nil
	})
	if errors.Is(err, errNoChange) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Retry returns a FAILED or CONFLICTED mutation to PENDING with a fresh
// retry budget.
func (q *MutationQueue) Retry(ctx context.Context, id string) (models.Mutation, error) {
	return q.transition(ctx, id, func(m *models.Mutation) error {
		if !m.IsTerminal() {
			return fmt.Errorf("%w: retry %s mutation", ErrInvalidTransition, m.Status)
		}
		m.Status = models.MutationPending
		m.RetryCount = 0
		return nil
	})
}

// Remove deletes the mutation. Removing an unknown id is a no-op.
func (q *MutationQueue) Remove(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return nil
	}

	return q.commit(ctx, func() error {
		q.items = slices.Delete(q.items, i, i+1)
		return nil
	})
}

// Clear drops every mutation regardless of status.
func (q *MutationQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.kv.Remove(ctx, QueueKey); err != nil {
		return fmt.Errorf("clear mutation queue: %w", err)
	}
	q.items = nil
	return nil
}

func (q *MutationQueue) Get(id string) (models.Mutation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i := q.indexOf(id); i >= 0 {
		return q.items[i], true
	}
	return models.Mutation{}, false
}

// All returns a snapshot in insertion order.
func (q *MutationQueue) All() []models.Mutation {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

// PendingIDs returns the ids of PENDING mutations in insertion order.
func (q *MutationQueue) PendingIDs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]string, 0, len(q.items))
	for _, it := range q.items {
		if it.Status == models.MutationPending {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func (q *MutationQueue) PendingCount() int {
	return q.count(models.MutationPending)
}

func (q *MutationQueue) FailedCount() int {
	return q.count(models.MutationFailed)
}

func (q *MutationQueue) ConflictedCount() int {
	return q.count(models.MutationConflicted)
}

func (q *MutationQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *MutationQueue) count(status models.MutationStatus) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, it := range q.items {
		if it.Status == status {
			n++
		}
	}
	return n
}

// errNoChange lets a transition report success without a persistence write.
var errNoChange = errors.New("no change")

func (q *MutationQueue) transition(ctx context.Context, id string, apply func(m *models.Mutation) error) (models.Mutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(id)
	if i < 0 {
		return models.Mutation{}, fmt.Errorf("%w: %s", ErrMutationNotFound, id)
	}

	err := q.commit(ctx, func() error {
		return apply(&q.items[i])
	})
	if errors.Is(err, errNoChange) {
		return q.items[i], nil
	}
	if err != nil {
		return models.Mutation{}, err
	}
	return q.items[i], nil
}

// commit applies change and persists the result, restoring the previous
// items if either step fails. Callers hold q.mu.
func (q *MutationQueue) commit(ctx context.Context, change func() error) error {
	prev := slices.Clone(q.items)

	if err := change(); err != nil {
		q.items = prev
		return err
	}
	if err := q.persist(ctx); err != nil {
		q.items = prev
		return err
	}
	return nil
}

func (q *MutationQueue) persist(ctx context.Context) error {
	data, err := json.Marshal(q.items)
	if err != nil {
		return fmt.Errorf("encode mutation queue: %w", err)
	}
	if err = q.kv.Put(ctx, QueueKey, string(data)); err != nil {
		q.logger.Err(err).Str("func", "MutationQueue.persist").Msg("failed to persist mutation queue")
		return fmt.Errorf("persist mutation queue: %w", err)
	}
	return nil
}

func resetSyncing(items []models.Mutation) int {
	n := 0
	for i := range items {
		if items[i].Status == models.MutationSyncing {
			items[i].Status = models.MutationPending
			n++
		}
	}
	return n
}

func (q *MutationQueue) indexOf(id string) int {
	return slices.IndexFunc(q.items, func(it models.Mutation) bool { return it.ID == id })
}
