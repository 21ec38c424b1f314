// Package utils provides general-purpose helpers used across the module:
// context keys, id generation, hashing and fingerprints, the resty client
// wrapper and session token parsing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SyncContextCtxKey carries a per-call sync context override.
var SyncContextCtxKey = contextKey("syncContext")

// WithSyncContext returns a copy of ctx that scopes reads to syncContext
// instead of the session's default.
func WithSyncContext(ctx context.Context, syncContext string) context.Context {
	return context.WithValue(ctx, SyncContextCtxKey, syncContext)
}

// GetSyncContextFromContext returns the override stored by WithSyncContext.
// ok is false when none is set or it is empty.
//
// Example usage:
//
//	syncCtx, ok := utils.GetSyncContextFromContext(ctx)
//	if !ok {
//	    syncCtx = provider.SyncContext()
//	}
func GetSyncContextFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(SyncContextCtxKey).(string)
	return v, ok && v != ""
}
