// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientConfig_AppliesDefaults(t *testing.T) {
	cfg, err := NewClientConfig(&StructuredConfig{
		Adapter: Adapter{HTTPAddress: "localhost:8080"},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, ClientQueue{Capacity: 1000, MaxRetries: 3, BackoffBase: time.Second}, cfg.Queue)
	assert.Equal(t, ClientCache{TTL: 5 * time.Minute, MaxEntries: 50, RecentEntries: 10}, cfg.Cache)
	assert.Equal(t, ClientWorkers{SyncInterval: 5 * time.Minute, HealthInterval: 15 * time.Second}, cfg.Workers)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	cfg, err := NewClientConfig(&StructuredConfig{
		App:     App{HashKey: "k", Version: "1.0.0", DefaultContext: "plant-1", LogLevel: "debug"},
		Adapter: Adapter{HTTPAddress: "https://api.example.com:443", RequestTimeout: 3 * time.Second, Token: "jwt"},
		Storage: Storage{DB: DB{DSN: ":memory:"}},
		Queue:   Queue{Capacity: 10, MaxRetries: 1, BackoffBase: time.Millisecond},
		Cache:   Cache{TTL: time.Second, MaxEntries: 2, RecentEntries: 1},
		Workers: Workers{SyncInterval: time.Minute, HealthInterval: time.Second},
	})
	require.NoError(t, err)

	assert.Equal(t, ClientApp{HashKey: "k", Version: "1.0.0", DefaultContext: "plant-1", LogLevel: "debug"}, cfg.App)
	assert.Equal(t, ClientAdapter{HTTPAddress: "https://api.example.com:443", RequestTimeout: 3 * time.Second, Token: "jwt"}, cfg.Adapter)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
	assert.Equal(t, 10, cfg.Queue.Capacity)
	assert.Equal(t, time.Second, cfg.Cache.TTL)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestNewClientConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  StructuredConfig
		want error
	}{
		{
			name: "missing adapter address",
			cfg:  StructuredConfig{},
			want: ErrInvalidAdapterConfigs,
		},
		{
			name: "unsupported dsn scheme",
			cfg: StructuredConfig{
				Adapter: Adapter{HTTPAddress: "localhost:8080"},
				Storage: Storage{DB: DB{DSN: "mysql://root@localhost/db"}},
			},
			want: ErrInvalidStorageConfigs,
		},
		{
			name: "unknown log level",
			cfg: StructuredConfig{
				App:     App{LogLevel: "loud"},
				Adapter: Adapter{HTTPAddress: "localhost:8080"},
			},
			want: ErrInvalidAppConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewClientConfig(&tt.cfg)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewClientConfig_PostgresDSN(t *testing.T) {
	for _, dsn := range []string{"postgres://u:p@localhost/db", "postgresql://u:p@localhost/db"} {
		_, err := NewClientConfig(&StructuredConfig{
			Adapter: Adapter{HTTPAddress: "localhost:8080"},
			Storage: Storage{DB: DB{DSN: dsn}},
		})
		assert.NoError(t, err, dsn)
	}
}
