// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/utils"
)

// MutationStatus is the lifecycle state of a queued write.
type MutationStatus string

const (
	// MutationPending is waiting to be submitted.
	MutationPending MutationStatus = "PENDING"
	// MutationSyncing has been handed to the sync engine and is in flight.
	MutationSyncing MutationStatus = "SYNCING"
	// MutationFailed exhausted its retries. Terminal until retried by the user.
	MutationFailed MutationStatus = "FAILED"
	// MutationConflicted is parked outside the retry cycle after an
	// unresolved conflict.
	MutationConflicted MutationStatus = "CONFLICTED"
)

// Mutation is a write operation queued for delivery to the remote service.
//
// Body is opaque to the sync core: it is stored and submitted as-is.
// EntityVersion, when set, is sent as an optimistic-concurrency precondition.
type Mutation struct {
	ID            string          `json:"id"`
	Endpoint      string          `json:"endpoint"`
	Method        string          `json:"method"`
	Body          json.RawMessage `json:"body,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	RetryCount    int             `json:"retry_count"`
	MaxRetries    int             `json:"max_retries"`
	Status        MutationStatus  `json:"status"`
	EntityVersion *int64          `json:"entity_version,omitempty"`
}

// Fingerprint identifies what the mutation does: endpoint, method and the
// canonical form of the body. Key order in the body does not matter.
func (m Mutation) Fingerprint() string {
	return utils.Fingerprint(m.Endpoint, m.Method, m.Body)
}

// IsTerminal reports whether m left the automatic retry cycle.
func (m Mutation) IsTerminal() bool {
	return m.Status == MutationFailed || m.Status == MutationConflicted
}

// SubmitRequest returns the remote write request for m, keeping the
// optimistic-concurrency precondition.
func (m Mutation) SubmitRequest() SubmitRequest {
	return SubmitRequest{
		Endpoint:      m.Endpoint,
		Method:        m.Method,
		Body:          m.Body,
		EntityVersion: m.EntityVersion,
	}
}

// SubmitRequest is a single write against the remote service.
type SubmitRequest struct {
	Endpoint string
	Method   string
	Body     json.RawMessage

	// EntityVersion is sent as If-Match when non-nil. Clearing it makes the
	// write unconditional.
	EntityVersion *int64
}

// WithoutPrecondition returns a copy of r that the server applies
// unconditionally.
func (r SubmitRequest) WithoutPrecondition() SubmitRequest {
	r.EntityVersion = nil
	return r
}
