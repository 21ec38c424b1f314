// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/network"
	"github.com/MKhiriev/go-offline-sync/internal/service"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/workers"
	"github.com/MKhiriev/go-offline-sync/models"
	"golang.org/x/sync/errgroup"
)

// App owns every long-lived component of the client.
type App struct {
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	monitor  *network.Monitor
	services *service.ClientServices
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp opens the local storage and wires the services described by cfg.
// The returned App must be run; Run releases the storage on exit.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log.WithComponent("adapter"))
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, store.QueueOptions{
		Capacity:   cfg.Queue.Capacity,
		MaxRetries: cfg.Queue.MaxRetries,
	}, log.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	return newApp(storages, serverAdapter, cfg, log), nil
}

func newApp(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, log *logger.Logger) *App {
	monitor := network.NewMonitor(log.WithComponent("network"))
	poller := network.NewHealthPoller(serverAdapter, monitor, cfg.Workers.HealthInterval, log.WithComponent("health_poller"))

	services := service.NewClientServices(storages, serverAdapter, monitor, service.ServicesOptions{
		Engine: service.SyncEngineOptions{
			BackoffBase:   cfg.Queue.BackoffBase,
			RetryAttempts: cfg.Queue.MaxRetries,
		},
		Loader: service.LoaderOptions{
			MaxEntries:    cfg.Cache.MaxEntries,
			RecentEntries: cfg.Cache.RecentEntries,
			DefaultTTL:    cfg.Cache.TTL,
		},
		SyncInterval: cfg.Workers.SyncInterval,
	}, log)

	return &App{
		storages: storages,
		adapter:  serverAdapter,
		monitor:  monitor,
		services: services,
		workers:  workers.NewWorkers(services.Connectivity, poller, services.DataSyncJob),
		logger:   log,
	}
}

// Run reconciles once, then keeps the workers running until ctx is done.
// The initial bundle sync and queue drain run concurrently; their failures
// are logged because the workers retry them on the next reconnect or tick.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if err := a.startup(ctx); err != nil {
		return err
	}

	a.workers.Run(ctx)
	a.logger.Info().Str("func", "App.Run").Int("workers", a.workers.Len()).Msg("client started")

	<-ctx.Done()

	a.logger.Info().Str("func", "App.Run").Msg("shutting down")
	a.workers.Stop()
	return nil
}

func (a *App) startup(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := a.services.DataSync.FullSync(gctx)
		if err == nil || gctx.Err() != nil {
			return gctx.Err()
		}
		if errors.Is(err, service.ErrNoBundle) {
			a.logger.Warn().Err(err).Str("func", "App.startup").Msg("no reference data available yet")
			return nil
		}
		a.logger.Err(err).Str("func", "App.startup").Msg("initial bundle sync failed")
		return nil
	})

	g.Go(func() error {
		if err := a.services.Engine.ProcessQueue(gctx); err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			a.logger.Err(err).Str("func", "App.startup").Msg("initial queue drain failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("client startup: %w", err)
	}
	return nil
}

func (a *App) close() {
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.close").Msg("failed to close local storage")
	}
}

// Enqueue records a local write for delivery on the next drain.
func (a *App) Enqueue(ctx context.Context, m models.Mutation) (models.Mutation, error) {
	return a.storages.Queue.Enqueue(ctx, m)
}

// Services exposes the sync services to the embedding application.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Adapter returns the remote adapter, e.g. to replace the session token.
func (a *App) Adapter() adapter.ServerAdapter {
	return a.adapter
}

// Status returns the last observed connectivity status.
func (a *App) Status() network.Status {
	return a.monitor.Status()
}
