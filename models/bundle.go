// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Bucket names used as keys of Bundle.Hashes and of delta responses.
const (
	BucketMenu              = "menu"
	BucketPermissions       = "permissions"
	BucketAvailableContexts = "available_contexts"

	// ScreenBucketPrefix prefixes a screen key, e.g. "screen:materials".
	ScreenBucketPrefix = "screen:"
)

// ScreenBucket returns the bucket name of the screen identified by key.
func ScreenBucket(key string) string {
	return ScreenBucketPrefix + key
}

// ScreenKey extracts the screen key from a bucket name. ok is false when
// bucket is not a screen bucket or the key is empty.
func ScreenKey(bucket string) (key string, ok bool) {
	key, ok = strings.CutPrefix(bucket, ScreenBucketPrefix)
	return key, ok && key != ""
}

// Bundle is the reference-data snapshot synchronized as a unit.
//
// Hashes maps every bucket (menu, permissions, available_contexts and one
// screen:<key> per screen) to the content hash the server computed for it.
type Bundle struct {
	Menu              json.RawMessage            `json:"menu"`
	Permissions       []string                   `json:"permissions"`
	Screens           map[string]json.RawMessage `json:"screens"`
	AvailableContexts []json.RawMessage          `json:"available_contexts"`
	Hashes            map[string]string          `json:"hashes"`
	SyncedAt          time.Time                  `json:"synced_at"`
}

// BucketDelta is the new content and hash of one changed bucket.
type BucketDelta struct {
	Data json.RawMessage `json:"data"`
	Hash string          `json:"hash"`
}

// DeltaRequest carries the client's known bucket hashes.
type DeltaRequest struct {
	Hashes map[string]string `json:"hashes"`
}

// DeltaResponse lists only the buckets whose hash differs from the request.
type DeltaResponse struct {
	Changed map[string]BucketDelta `json:"changed"`
}
