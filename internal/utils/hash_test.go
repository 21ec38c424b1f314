// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashString(t *testing.T) {
	h := hmac.New(sha256.New, []byte("secret"))
	h.Write([]byte("payload"))
	want := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, want, HashString("payload", "secret"))
	assert.NotEqual(t, want, HashString("payload", "other"))
}

func TestCanonicalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"sorted keys", `{"b":2,"a":1}`, `{"a":1,"b":2}`},
		{"nested and whitespace", "{ \"z\": {\"y\": [1, 2], \"x\": null} }", `{"z":{"x":null,"y":[1,2]}}`},
		{"large number kept", `{"n":12345678901234567890}`, `{"n":12345678901234567890}`},
		{"empty", "   ", ""},
		{"invalid json returned as is", ` not-json `, `not-json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(CanonicalJSON([]byte(tt.in))))
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("/api/items", "post", []byte(`{"a":1,"b":2}`))
	b := Fingerprint("/api/items", "POST", []byte(`{"b":2, "a":1}`))
	require.Len(t, a, 64)
	assert.Equal(t, a, b, "key order and method case must not matter")

	assert.NotEqual(t, a, Fingerprint("/api/items", "PUT", []byte(`{"a":1,"b":2}`)))
	assert.NotEqual(t, a, Fingerprint("/api/items/1", "POST", []byte(`{"a":1,"b":2}`)))
	assert.NotEqual(t, a, Fingerprint("/api/items", "POST", []byte(`{"a":1,"b":3}`)))
	assert.NotEqual(t, Fingerprint("ab", "c", nil), Fingerprint("a", "bc", nil))
}

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("tenant-1", "/api/items", map[string]string{"page": "1", "q": "x"})
	k2 := CacheKey("tenant-1", "/api/items", map[string]string{"q": "x", "page": "1"})
	assert.Equal(t, k1, k2)

	assert.NotEqual(t, k1, CacheKey("tenant-2", "/api/items", map[string]string{"page": "1", "q": "x"}))
	assert.NotEqual(t, k1, CacheKey("tenant-1", "/api/items", map[string]string{"page": "2", "q": "x"}))
	assert.NotEqual(t, k1, CacheKey("tenant-1", "/api/items", nil))
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash([]byte(`{"a":1,"b":[1,2]}`)), ContentHash([]byte(`{"b":[1,2],"a":1}`)))
	assert.NotEqual(t, ContentHash([]byte(`[1,2]`)), ContentHash([]byte(`[2,1]`)))
}
