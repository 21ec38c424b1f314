// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"sync"
)

var errStorageDown = errors.New("storage down")

// flakyKV wraps a memory store and fails writes while failPut is set.
type flakyKV struct {
	*MemoryKeyValueStore

	mu        sync.Mutex
	failPut   bool
	failGet   bool
	putCalls  int
	lastValue string
}

func newFlakyKV() *flakyKV {
	return &flakyKV{MemoryKeyValueStore: NewMemoryKeyValueStore()}
}

func (f *flakyKV) setFailPut(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPut = v
}

func (f *flakyKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, errStorageDown
	}
	return f.MemoryKeyValueStore.Get(ctx, key)
}

func (f *flakyKV) Put(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.putCalls++
	fail := f.failPut
	if !fail {
		f.lastValue = value
	}
	f.mu.Unlock()
	if fail {
		return errStorageDown
	}
	return f.MemoryKeyValueStore.Put(ctx, key, value)
}
