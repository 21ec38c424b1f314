// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"maps"
	"slices"
	"sync"
)

// ScreenCache is the in-memory view of the bundle's screen definitions.
// It is rebuilt on every full sync and patched by delta syncs.
type ScreenCache struct {
	mu      sync.RWMutex
	screens map[string]json.RawMessage
}

func NewScreenCache() *ScreenCache {
	return &ScreenCache{screens: make(map[string]json.RawMessage)}
}

// Seed replaces the whole cache.
func (c *ScreenCache) Seed(screens map[string]json.RawMessage) {
	next := make(map[string]json.RawMessage, len(screens))
	for k, v := range screens {
		next[k] = slices.Clone(v)
	}

	c.mu.Lock()
	c.screens = next
	c.mu.Unlock()
}

func (c *ScreenCache) Set(key string, content json.RawMessage) {
	c.mu.Lock()
	c.screens[key] = slices.Clone(content)
	c.mu.Unlock()
}

func (c *ScreenCache) Remove(key string) {
	c.mu.Lock()
	delete(c.screens, key)
	c.mu.Unlock()
}

func (c *ScreenCache) Get(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.screens[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}

// Keys returns the screen keys in sorted order.
func (c *ScreenCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.screens))
}

// Snapshot returns a copy of every cached screen.
func (c *ScreenCache) Snapshot() map[string]json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(c.screens))
	for k, v := range c.screens {
		out[k] = slices.Clone(v)
	}
	return out
}

func (c *ScreenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.screens)
}
