// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

const (
	DefaultHealthInterval = 15 * time.Second
	checkTimeout          = 5 * time.Second
)

// HealthPoller pings the remote service on an interval and reports the outcome
// to a [Monitor].
type HealthPoller struct {
	checker  adapter.HealthChecker
	monitor  *Monitor
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewHealthPoller(checker adapter.HealthChecker, monitor *Monitor, interval time.Duration, log *logger.Logger) *HealthPoller {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &HealthPoller{checker: checker, monitor: monitor, interval: interval, logger: log}
}

// Check pings once and reports the result. A check cut short by ctx
// reports nothing.
func (p *HealthPoller) Check(ctx context.Context) Status {
	pingCtx, cancel := context.WithTimeout(ctx, min(p.interval, checkTimeout))
	defer cancel()

	status := StatusAvailable
	if err := p.checker.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return p.monitor.Status()
		}
		p.logger.Debug().Err(err).Str("func", "HealthPoller.Check").Msg("health check failed")
		status = StatusUnavailable
	}

	p.monitor.Report(status)
	return status
}

// Run checks immediately and then every interval until ctx ends or Stop is
// called. A running poller is restarted.
func (p *HealthPoller) Run(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		p.Check(runCtx)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-t.C:
				p.Check(runCtx)
			}
		}
	}()
}

// Stop cancels the polling goroutine and waits for it to exit.
func (p *HealthPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
