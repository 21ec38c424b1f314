// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/network"
	"github.com/MKhiriev/go-offline-sync/internal/store"
)

// ServicesOptions carries the tunables of every service.
type ServicesOptions struct {
	Engine       SyncEngineOptions
	Loader       LoaderOptions
	SyncInterval time.Duration
}

type ClientServices struct {
	Engine       SyncEngine
	Loader       DataLoader
	Connectivity ConnectivitySyncManager
	Screens      *ScreenCache
	DataSync     DataSyncService
	DataSyncJob  DataSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, monitor *network.Monitor, opts ServicesOptions, log *logger.Logger) *ClientServices {
	engine := NewSyncEngine(storages.Queue, serverAdapter, NewLastWriteWinsResolver(), opts.Engine, log)
	loader := NewCachedDataLoader(serverAdapter, serverAdapter, storages.KV, serverAdapter, opts.Loader, log)
	screens := NewScreenCache()
	dataSync := NewDataSyncService(serverAdapter, storages.SyncStore, screens, log)

	return &ClientServices{
		Engine:       engine,
		Loader:       loader,
		Connectivity: NewConnectivitySyncManager(monitor, engine, loader, log),
		Screens:      screens,
		DataSync:     dataSync,
		DataSyncJob:  NewDataSyncJob(dataSync, opts.SyncInterval, log),
	}
}
