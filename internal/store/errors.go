// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Queue errors. Callers should use [errors.Is] to match against these values.
var (
	// ErrQueueFull is returned by Enqueue when the queue holds Capacity items.
	ErrQueueFull = errors.New("mutation queue is full")

	// ErrDuplicateMutation is returned by Enqueue when a pending mutation with
	// the same fingerprint is already queued.
	ErrDuplicateMutation = errors.New("duplicate pending mutation")

	// ErrInvalidMutation is returned for mutations without an endpoint.
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrMutationNotFound is returned when no queued mutation has the given id.
	ErrMutationNotFound = errors.New("mutation not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the mutation's current status.
	ErrInvalidTransition = errors.New("invalid mutation status transition")
)

// Sync store errors.
var (
	// ErrUnknownBucket is returned for bucket names outside the bundle
	// convention (menu, permissions, available_contexts, screen:<key>).
	ErrUnknownBucket = errors.New("unknown bundle bucket")

	// ErrCorruptState is returned when a persisted value cannot be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrUnsupportedDSN is returned when a DSN names an unknown backend.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)
