// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// DataPage is one page of opaque records returned by a remote read.
// A page is never modified after construction; use Clone before handing it
// to code that may append to Items.
type DataPage struct {
	Items   []json.RawMessage `json:"items"`
	Total   *int              `json:"total,omitempty"`
	HasMore bool              `json:"has_more"`
}

// Clone returns a copy of p with its own Items slice.
func (p DataPage) Clone() DataPage {
	items := make([]json.RawMessage, len(p.Items))
	copy(items, p.Items)

	var total *int
	if p.Total != nil {
		t := *p.Total
		total = &t
	}

	return DataPage{Items: items, Total: total, HasMore: p.HasMore}
}

// DefaultCacheTTL is the freshness window of a loader configured without one.
const DefaultCacheTTL = 5 * time.Minute

// LoadConfig carries per-call read options.
type LoadConfig struct {
	// CacheTTL is how long a cached page is served without a network call.
	// Zero means the loader's default.
	CacheTTL time.Duration

	// ForceRefresh skips the fresh-cache shortcut. Stale fallback on remote
	// failure still applies.
	ForceRefresh bool

	// Page and PageSize are forwarded to the remote as query parameters when
	// non-zero.
	Page     int
	PageSize int
}
