// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

const DefaultSyncInterval = 5 * time.Minute

type dataSyncJob struct {
	syncService DataSyncService
	interval    time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewDataSyncJob creates a job that calls syncService.DeltaSync on a
// ticker. The job is idle until Start or Run is called.
func NewDataSyncJob(syncService DataSyncService, interval time.Duration, log *logger.Logger) DataSyncJob {
	return &dataSyncJob{syncService: syncService, interval: interval, logger: log.WithComponent("data_sync_job")}
}

// Start implements DataSyncJob. If interval is zero or negative it defaults
// to DefaultSyncInterval. The goroutine exits when ctx is cancelled or Stop
// is called.
func (j *dataSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.syncService.DeltaSync(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Err(err).Str("func", "dataSyncJob.Start").Msg("periodic delta sync failed")
				}
			}
		}
	}()
}

func (j *dataSyncJob) Run(ctx context.Context) {
	j.Start(ctx, j.interval)
}

// Stop implements DataSyncJob. Safe to call when the job is not running.
func (j *dataSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
