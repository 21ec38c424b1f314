// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/network"
	"github.com/MKhiriev/go-offline-sync/internal/observe"
)

type connectivitySyncManager struct {
	source  network.ReconnectSource
	engine  SyncEngine
	loader  DataLoader
	reloads *observe.Feed[ReloadSignal]
	now     func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewConnectivitySyncManager wires the reconnect edges of source to the
// engine and the loader. The manager is idle until Run is called.
func NewConnectivitySyncManager(source network.ReconnectSource, engine SyncEngine, loader DataLoader, log *logger.Logger) ConnectivitySyncManager {
	return &connectivitySyncManager{
		source:  source,
		engine:  engine,
		loader:  loader,
		reloads: observe.NewFeed[ReloadSignal](observe.DefaultFeedBuffer),
		now:     time.Now,
		logger:  log.WithComponent("connectivity"),
	}
}

// HandleReconnect drains the queue, then evicts the recently viewed pages
// and signals a reload. A failed drain does not stop the reload unless ctx
// was cancelled.
func (c *connectivitySyncManager) HandleReconnect(ctx context.Context) error {
	c.logger.Info().Str("func", "connectivitySyncManager.HandleReconnect").Msg("back online, syncing")

	if err := c.engine.ProcessQueue(ctx); err != nil {
		if ctx.Err() != nil {
			return err
		}
		c.logger.Err(err).Str("func", "connectivitySyncManager.HandleReconnect").Msg("queue drain failed")
	}

	c.loader.InvalidateRecent()
	c.reloads.Publish(ReloadSignal{At: c.now()})
	return nil
}

func (c *connectivitySyncManager) Run(ctx context.Context) {
	c.Stop()

	c.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	edges, unsubscribe := c.source.Reconnects()
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer unsubscribe()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-edges:
				_ = c.HandleReconnect(runCtx)
			}
		}
	}()
}

func (c *connectivitySyncManager) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

func (c *connectivitySyncManager) SubscribeReloads() (<-chan ReloadSignal, func()) {
	return c.reloads.Subscribe()
}
