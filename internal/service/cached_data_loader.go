// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	DefaultCacheEntries  = 50
	DefaultRecentEntries = 10

	cacheKeyPrefix = "cache:"
)

// LoaderOptions bounds the in-memory cache.
type LoaderOptions struct {
	// MaxEntries caps the in-memory pages; the oldest insertion is evicted
	// first.
	MaxEntries int
	// RecentEntries is the length of the recently served list.
	RecentEntries int
	// DefaultTTL applies to loads whose LoadConfig leaves CacheTTL unset.
	DefaultTTL time.Duration

	Now func() time.Time
}

func (o LoaderOptions) withDefaults() LoaderOptions {
	if o.MaxEntries <= 0 {
		o.MaxEntries = DefaultCacheEntries
	}
	if o.RecentEntries <= 0 {
		o.RecentEntries = DefaultRecentEntries
	}
	if o.DefaultTTL <= 0 {
		o.DefaultTTL = models.DefaultCacheTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type cacheEntry struct {
	Endpoint  string          `json:"endpoint"`
	Page      models.DataPage `json:"page"`
	FetchedAt time.Time       `json:"fetched_at"`
}

type cachedDataLoader struct {
	reader   adapter.RemoteReader
	writer   adapter.RemoteWriter
	kv       store.KeyValueStore
	contexts adapter.ContextProvider
	opts     LoaderOptions

	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	recent  []string

	logger *logger.Logger
}

// NewCachedDataLoader creates the cached read path. kv holds the durable
// fallback copies; contexts supplies the sync context that partitions cache
// keys and may be nil.
func NewCachedDataLoader(reader adapter.RemoteReader, writer adapter.RemoteWriter, kv store.KeyValueStore, contexts adapter.ContextProvider, opts LoaderOptions, log *logger.Logger) DataLoader {
	return &cachedDataLoader{
		reader:   reader,
		writer:   writer,
		kv:       kv,
		contexts: contexts,
		opts:     opts.withDefaults(),
		entries:  make(map[string]cacheEntry),
		logger:   log.WithComponent("data_loader"),
	}
}

func (l *cachedDataLoader) ttl(cfg models.LoadConfig) time.Duration {
	if cfg.CacheTTL > 0 {
		return cfg.CacheTTL
	}
	return l.opts.DefaultTTL
}

func (l *cachedDataLoader) LoadData(ctx context.Context, endpoint string, cfg models.LoadConfig, params map[string]string) (models.DataPage, error) {
	key := l.cacheKey(ctx, endpoint, cfg, params)

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[key]; ok && !cfg.ForceRefresh && l.opts.Now().Sub(e.FetchedAt) < l.ttl(cfg) {
		l.touchRecent(key)
		return e.Page.Clone(), nil
	}

	page, err := l.reader.Load(ctx, endpoint, cfg, params)
	if err == nil {
		e := cacheEntry{Endpoint: endpoint, Page: page.Clone(), FetchedAt: l.opts.Now()}
		l.put(key, e)
		l.persist(ctx, key, e)
		l.touchRecent(key)
		return page.Clone(), nil
	}

	log := l.logger.With().Str("endpoint", endpoint).Logger()

	if e, ok := l.entries[key]; ok {
		log.Warn().Err(err).Str("func", "cachedDataLoader.LoadData").Time("fetched_at", e.FetchedAt).Msg("remote load failed, serving cached page")
		l.touchRecent(key)
		return e.Page.Clone(), nil
	}

	if e, ok := l.restore(ctx, key); ok {
		log.Warn().Err(err).Str("func", "cachedDataLoader.LoadData").Time("fetched_at", e.FetchedAt).Msg("remote load failed, serving persisted page")
		l.put(key, e)
		l.touchRecent(key)
		return e.Page.Clone(), nil
	}

	return models.DataPage{}, err
}

func (l *cachedDataLoader) SubmitData(ctx context.Context, endpoint string, body json.RawMessage, method string) (json.RawMessage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	resp, err := l.writer.Submit(ctx, models.SubmitRequest{Endpoint: endpoint, Method: method, Body: body})
	if err != nil {
		return nil, err
	}

	n := l.invalidate(parentPath(endpoint))
	l.logger.Debug().Str("func", "cachedDataLoader.SubmitData").Str("endpoint", endpoint).Int("invalidated", n).Msg("write-through done")
	return resp, nil
}

func (l *cachedDataLoader) InvalidateRecent() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range l.recent {
		l.evict(key)
	}
	l.recent = l.recent[:0]
}

func (l *cachedDataLoader) Invalidate(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invalidate(prefix)
}

func (l *cachedDataLoader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[string]cacheEntry)
	l.order = nil
	l.recent = nil
}

func (l *cachedDataLoader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *cachedDataLoader) cacheKey(ctx context.Context, endpoint string, cfg models.LoadConfig, params map[string]string) string {
	syncContext, ok := utils.GetSyncContextFromContext(ctx)
	if !ok && l.contexts != nil {
		syncContext = l.contexts.SyncContext()
	}

	keyParams := make(map[string]string, len(params)+2)
	for k, v := range params {
		keyParams[k] = v
	}
	if cfg.Page > 0 {
		keyParams["page"] = strconv.Itoa(cfg.Page)
	}
	if cfg.PageSize > 0 {
		keyParams["page_size"] = strconv.Itoa(cfg.PageSize)
	}

	return utils.CacheKey(syncContext, endpoint, keyParams)
}

// put stores e under key. A refreshed key keeps its insertion position.
func (l *cachedDataLoader) put(key string, e cacheEntry) {
	if _, ok := l.entries[key]; !ok {
		for len(l.order) >= l.opts.MaxEntries {
			oldest := l.order[0]
			l.order = l.order[1:]
			delete(l.entries, oldest)
		}
		l.order = append(l.order, key)
	}
	l.entries[key] = e
}

func (l *cachedDataLoader) evict(key string) {
	if _, ok := l.entries[key]; !ok {
		return
	}
	delete(l.entries, key)
	if i := slices.Index(l.order, key); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
}

func (l *cachedDataLoader) invalidate(prefix string) int {
	var n int
	for key, e := range l.entries {
		if underPath(e.Endpoint, prefix) {
			l.evict(key)
			n++
		}
	}
	return n
}

func (l *cachedDataLoader) touchRecent(key string) {
	if i := slices.Index(l.recent, key); i >= 0 {
		l.recent = slices.Delete(l.recent, i, i+1)
	}
	l.recent = append(l.recent, key)
	if over := len(l.recent) - l.opts.RecentEntries; over > 0 {
		l.recent = slices.Delete(l.recent, 0, over)
	}
}

func (l *cachedDataLoader) persist(ctx context.Context, key string, e cacheEntry) {
	if l.kv == nil {
		return
	}
	raw, err := json.Marshal(e)
	if err == nil {
		err = l.kv.Put(ctx, cacheKeyPrefix+key, string(raw))
	}
	if err != nil {
		l.logger.Warn().Err(err).Str("func", "cachedDataLoader.persist").Str("endpoint", e.Endpoint).Msg("failed to persist cached page")
	}
}

func (l *cachedDataLoader) restore(ctx context.Context, key string) (cacheEntry, bool) {
	if l.kv == nil {
		return cacheEntry{}, false
	}
	raw, ok, err := l.kv.Get(ctx, cacheKeyPrefix+key)
	if err != nil {
		l.logger.Warn().Err(err).Str("func", "cachedDataLoader.restore").Msg("failed to read persisted page")
		return cacheEntry{}, false
	}
	if !ok {
		return cacheEntry{}, false
	}

	var e cacheEntry
	if err = json.Unmarshal([]byte(raw), &e); err != nil {
		l.logger.Warn().Err(err).Str("func", "cachedDataLoader.restore").Msg("discarding corrupt persisted page")
		return cacheEntry{}, false
	}
	return e, true
}

// parentPath drops the query and the last path segment of endpoint.
// Single-segment endpoints are their own parent.
func parentPath(endpoint string) string {
	p, _, _ := strings.Cut(endpoint, "?")
	segments := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	if len(segments) >= 2 {
		segments = segments[:len(segments)-1]
	}
	return "/" + strings.Join(segments, "/")
}

// underPath reports whether endpoint equals prefix or lies below it.
func underPath(endpoint, prefix string) bool {
	p, _, _ := strings.Cut(endpoint, "?")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
