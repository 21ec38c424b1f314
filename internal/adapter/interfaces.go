// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for talking to the
// remote data service.
//
// The sync core depends only on the small interfaces below; [ServerAdapter]
// bundles them for the HTTP/REST implementation ([NewHTTPServerAdapter]).
// Every failure is reported as a [*RemoteError] whose Kind tells callers
// whether to retry, resolve a conflict or give up. Use [errors.Is] with the
// sentinels in errors.go (e.g. [ErrConflict] for 409) or [KindOf].
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// RemoteWriter submits a single write.
type RemoteWriter interface {
	// Submit sends req and returns the raw response body. A request carrying
	// an EntityVersion is conditional; a stale version yields a Conflict
	// error and a missing entity NotFound or Gone.
	Submit(ctx context.Context, req models.SubmitRequest) (json.RawMessage, error)
}

// RemoteReader loads one page of records.
type RemoteReader interface {
	Load(ctx context.Context, endpoint string, cfg models.LoadConfig, params map[string]string) (models.DataPage, error)
}

// BundleRemote fetches reference-data bundles.
type BundleRemote interface {
	// GetBundle returns the complete bundle.
	GetBundle(ctx context.Context) (models.Bundle, error)

	// DeltaSync sends the known bucket hashes and returns only the buckets
	// whose server-side hash differs.
	DeltaSync(ctx context.Context, hashes map[string]string) (models.DeltaResponse, error)
}

// HealthChecker pings the remote service.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ContextProvider names the data context the current session is bound to.
// Read caches are partitioned by it.
type ContextProvider interface {
	SyncContext() string
}

// ServerAdapter is the full transport used by the client application.
type ServerAdapter interface {
	RemoteWriter
	RemoteReader
	BundleRemote
	HealthChecker
	ContextProvider

	// SetToken stores the bearer token attached to all subsequent requests
	// and re-derives the sync context from it.
	SetToken(token string)

	// Token returns the bearer token currently held, or "".
	Token() string
}
