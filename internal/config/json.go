package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		HashKey        string `json:"hash_key"`
		Version        string `json:"version"`
		DefaultContext string `json:"default_context"`
		LogLevel       string `json:"log_level"`
		LogFile        string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Queue struct {
		Capacity    int      `json:"capacity"`
		MaxRetries  int      `json:"max_retries"`
		BackoffBase Duration `json:"backoff_base"`
	} `json:"queue,omitempty"`

	Cache struct {
		TTL           Duration `json:"ttl"`
		MaxEntries    int      `json:"max_entries"`
		RecentEntries int      `json:"recent_entries"`
	} `json:"cache,omitempty"`

	Workers struct {
		SyncInterval   Duration `json:"sync_interval"`
		HealthInterval Duration `json:"health_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:        jsonCfg.App.HashKey,
			Version:        jsonCfg.App.Version,
			DefaultContext: jsonCfg.App.DefaultContext,
			LogLevel:       jsonCfg.App.LogLevel,
			LogFile:        jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Queue: Queue{
			Capacity:    jsonCfg.Queue.Capacity,
			MaxRetries:  jsonCfg.Queue.MaxRetries,
			BackoffBase: time.Duration(jsonCfg.Queue.BackoffBase),
		},
		Cache: Cache{
			TTL:           time.Duration(jsonCfg.Cache.TTL),
			MaxEntries:    jsonCfg.Cache.MaxEntries,
			RecentEntries: jsonCfg.Cache.RecentEntries,
		},
		Workers: Workers{
			SyncInterval:   time.Duration(jsonCfg.Workers.SyncInterval),
			HealthInterval: time.Duration(jsonCfg.Workers.HealthInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
