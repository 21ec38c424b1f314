package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds a remote service address with an optional http(s)
// scheme. It implements the flag.Value interface.
type NetAddress struct {
	Scheme string
	Host   string
	Port   int
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a remote service address in format [scheme://]host:port
//	-d database DSN (SQLite path, postgres:// URL or :memory:)
//	-c/-config json file path with configs
//	-hash-key request signing key
//	-token session token
//	-context default sync context
//	-request-timeout request timeout (e.g., "10s")
//	-queue-capacity maximum queued mutations
//	-max-retries failed passes before a mutation is FAILED
//	-backoff-base first retry delay (e.g., "1s")
//	-cache-ttl cached page freshness (e.g., "5m")
//	-cache-entries in-memory cached pages
//	-recent-entries recently viewed pages evicted on reconnect
//	-sync-interval reference-data sync period (e.g., "5m")
//	-health-interval connectivity check period (e.g., "15s")
//	-log-level log level
//	-log-file log file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("offline-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfg StructuredConfig
	var address NetAddress

	fs.Var(&address, "a", "Remote service address [scheme://]host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Request signing key")
	fs.StringVar(&cfg.Adapter.Token, "token", "", "Session token")
	fs.StringVar(&cfg.App.DefaultContext, "context", "", "Default sync context")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")
	fs.IntVar(&cfg.Queue.Capacity, "queue-capacity", 0, "Maximum queued mutations")
	fs.IntVar(&cfg.Queue.MaxRetries, "max-retries", 0, "Failed passes before a mutation is marked failed")
	fs.DurationVar(&cfg.Queue.BackoffBase, "backoff-base", 0, "First retry delay (e.g., 1s)")
	fs.DurationVar(&cfg.Cache.TTL, "cache-ttl", 0, "Cached page freshness (e.g., 5m)")
	fs.IntVar(&cfg.Cache.MaxEntries, "cache-entries", 0, "In-memory cached pages")
	fs.IntVar(&cfg.Cache.RecentEntries, "recent-entries", 0, "Recently viewed pages evicted on reconnect")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Reference-data sync period (e.g., 5m)")
	fs.DurationVar(&cfg.Workers.HealthInterval, "health-interval", 0, "Connectivity check period (e.g., 15s)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Adapter.HTTPAddress = address.String()
	return &cfg, nil
}

// String returns the address as [scheme://]host:port, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	hostPort := net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
	if a.Scheme != "" {
		return a.Scheme + "://" + hostPort
	}
	return hostPort
}

// Set parses [scheme://]host:port. The scheme must be http or https and the
// port a positive integer.
func (a *NetAddress) Set(s string) error {
	scheme := ""
	if before, after, ok := strings.Cut(s, "://"); ok {
		scheme = strings.ToLower(before)
		if scheme != "http" && scheme != "https" {
			return errors.New("scheme must be http or https")
		}
		s = strings.TrimSuffix(after, "/")
	}

	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host == "" {
		return errors.New("host is required")
	}

	a.Scheme = scheme
	a.Host = host
	a.Port = port
	return nil
}
