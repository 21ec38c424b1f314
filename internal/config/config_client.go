package config

import (
	"fmt"
	"time"
)

// Defaults applied by [NewClientConfig] to unset fields.
const (
	DefaultDSN            = "offline-sync.db"
	DefaultRequestTimeout = 10 * time.Second
	DefaultQueueCapacity  = 1000
	DefaultMaxRetries     = 3
	DefaultBackoffBase    = time.Second
	DefaultCacheTTL       = 5 * time.Minute
	DefaultCacheEntries   = 50
	DefaultRecentEntries  = 10
	DefaultSyncInterval   = 5 * time.Minute
	DefaultHealthInterval = 15 * time.Second
	DefaultLogLevel       = "info"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	// Version is reported in logs and the build banner.
	Version string
	// DefaultContext is the sync context used when the token has none.
	DefaultContext string
	LogLevel       string
	LogFile        string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is the initial session token; it may be replaced at runtime.
	Token string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite path, PostgreSQL URL or ":memory:".
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientQueue contains mutation queue settings.
type ClientQueue struct {
	Capacity    int
	MaxRetries  int
	BackoffBase time.Duration
}

// ClientCache contains read cache settings.
type ClientCache struct {
	TTL           time.Duration
	MaxEntries    int
	RecentEntries int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the reference data is delta-synced.
	SyncInterval time.Duration
	// HealthInterval defines how often connectivity is checked.
	HealthInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Queue   ClientQueue
	Cache   ClientCache
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg to a [ClientConfig], fills defaults for unset
// fields and validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:        cfg.App.HashKey,
			Version:        cfg.App.Version,
			DefaultContext: cfg.App.DefaultContext,
			LogLevel:       orDefault(cfg.App.LogLevel, DefaultLogLevel),
			LogFile:        cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: orDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: orDefault(cfg.Storage.DB.DSN, DefaultDSN),
			},
		},
		Queue: ClientQueue{
			Capacity:    orDefault(cfg.Queue.Capacity, DefaultQueueCapacity),
			MaxRetries:  orDefault(cfg.Queue.MaxRetries, DefaultMaxRetries),
			BackoffBase: orDefault(cfg.Queue.BackoffBase, DefaultBackoffBase),
		},
		Cache: ClientCache{
			TTL:           orDefault(cfg.Cache.TTL, DefaultCacheTTL),
			MaxEntries:    orDefault(cfg.Cache.MaxEntries, DefaultCacheEntries),
			RecentEntries: orDefault(cfg.Cache.RecentEntries, DefaultRecentEntries),
		},
		Workers: ClientWorkers{
			SyncInterval:   orDefault(cfg.Workers.SyncInterval, DefaultSyncInterval),
			HealthInterval: orDefault(cfg.Workers.HealthInterval, DefaultHealthInterval),
		},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
