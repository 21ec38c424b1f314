// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package network tracks connectivity to the remote service and turns it
// into a reconnect signal.
//
// [Monitor] is the single edge detector of the process: every component
// that reacts to connectivity returning subscribes to its reconnect feed
// instead of watching the raw status on its own.
package network

import (
	"sync"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/observe"
)

// Status is the last known reachability of the remote service.
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ReconnectSource yields one event per Unavailable → Available transition.
type ReconnectSource interface {
	Reconnects() (<-chan struct{}, func())
}

// Monitor records status reports and publishes reconnect edges.
type Monitor struct {
	mu         sync.Mutex
	status     *observe.Value[Status]
	reconnects *observe.Feed[struct{}]

	logger *logger.Logger
}

func NewMonitor(log *logger.Logger) *Monitor {
	return &Monitor{
		status:     observe.NewValue(StatusUnknown),
		reconnects: observe.NewFeed[struct{}](1),
		logger:     log,
	}
}

// Report records s. It returns true when s is a reconnect edge. The first
// report after start (Unknown → Available) is not an edge.
func (m *Monitor) Report(s Status) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.status.Get()
	if prev == s {
		return false
	}
	m.status.Set(s)

	m.logger.Info().Str("func", "Monitor.Report").
		Stringer("from", prev).Stringer("to", s).Msg("network status changed")

	if prev == StatusUnavailable && s == StatusAvailable {
		m.reconnects.Publish(struct{}{})
		return true
	}
	return false
}

func (m *Monitor) Status() Status {
	return m.status.Get()
}

// Subscribe streams status changes, starting with the current status.
func (m *Monitor) Subscribe() (<-chan Status, func()) {
	return m.status.Subscribe()
}

// Reconnects implements [ReconnectSource]. Edges that arrive while a
// subscriber is still handling the previous one are coalesced.
func (m *Monitor) Reconnects() (<-chan struct{}, func()) {
	return m.reconnects.Subscribe()
}
