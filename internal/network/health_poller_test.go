// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealthPoller_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mock.NewMockHealthChecker(ctrl)
	m := NewMonitor(logger.Nop())
	p := NewHealthPoller(checker, m, time.Second, logger.Nop())

	edges, cancel := m.Reconnects()
	defer cancel()

	gomock.InOrder(
		checker.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp: refused")),
		checker.EXPECT().Ping(gomock.Any()).Return(nil),
	)

	assert.Equal(t, StatusUnavailable, p.Check(context.Background()))
	assert.Equal(t, StatusAvailable, p.Check(context.Background()))
	assert.Len(t, edges, 1)
}

func TestHealthPoller_CancelledCheckReportsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mock.NewMockHealthChecker(ctrl)
	m := NewMonitor(logger.Nop())
	m.Report(StatusAvailable)
	p := NewHealthPoller(checker, m, time.Second, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	checker.EXPECT().Ping(gomock.Any()).Return(context.Canceled)

	assert.Equal(t, StatusAvailable, p.Check(ctx))
	assert.Equal(t, StatusAvailable, m.Status())
}

func TestHealthPoller_RunAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	checker := mock.NewMockHealthChecker(ctrl)
	m := NewMonitor(logger.Nop())
	p := NewHealthPoller(checker, m, 10*time.Millisecond, logger.Nop())

	checked := make(chan struct{}, 100)
	checker.EXPECT().Ping(gomock.Any()).DoAndReturn(func(context.Context) error {
		checked <- struct{}{}
		return nil
	}).MinTimes(2)

	p.Run(context.Background())

	for i := 0; i < 2; i++ {
		select {
		case <-checked:
		case <-time.After(time.Second):
			t.Fatal("health poller did not run")
		}
	}
	p.Stop()
	p.Stop()

	require.Equal(t, StatusAvailable, m.Status())
}
