// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNoBundle is returned by FullSync when the remote is unreachable and
	// no bundle was ever stored.
	ErrNoBundle = errors.New("no reference data available")

	// ErrInvalidBucket marks delta content that does not match its bucket's
	// expected shape.
	ErrInvalidBucket = errors.New("invalid bucket content")
)
