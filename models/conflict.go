// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConflictResolution is the action a conflict policy picks for a mutation
// the server rejected as conflicting.
type ConflictResolution int

const (
	// ResolutionSkip drops the local mutation; server state wins.
	ResolutionSkip ConflictResolution = iota
	// ResolutionRetryWithoutCheck resubmits once without the
	// optimistic-concurrency precondition.
	ResolutionRetryWithoutCheck
)

func (r ConflictResolution) String() string {
	switch r {
	case ResolutionSkip:
		return "skip"
	case ResolutionRetryWithoutCheck:
		return "retry-without-check"
	default:
		return "unknown"
	}
}

// ConflictEventKind classifies a ConflictEvent.
type ConflictEventKind string

const (
	ConflictEntityDeleted ConflictEventKind = "entity_deleted"
	ConflictResolved      ConflictEventKind = "resolved"
)

// ConflictEvent reports how a conflict was handled.
type ConflictEvent struct {
	Kind       ConflictEventKind
	MutationID string
	Endpoint   string
	// Strategy names the policy for Resolved events, e.g. "last-write-wins".
	Strategy string
}

// ConflictDecision is the output of a conflict policy.
type ConflictDecision struct {
	Resolution ConflictResolution
	Event      ConflictEvent
}
