// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// fieldSeparator splits the parts fed into a digest so that
// ("ab", "c") and ("a", "bc") never collide.
const fieldSeparator = 0x1f

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. The HTTP adapter sends it in the HashSHA256 header.
//
// Example usage:
//
//	signature := utils.HashString(string(body), "my-secret-key")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CanonicalJSON re-encodes raw with object keys sorted and insignificant
// whitespace removed, so that semantically equal documents produce equal
// bytes. Input that is not valid JSON is returned trimmed but otherwise
// unchanged.
func CanonicalJSON(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return trimmed
	}

	// encoding/json sorts map keys on output.
	out, err := json.Marshal(v)
	if err != nil {
		return trimmed
	}
	return out
}

// Fingerprint identifies a write by what it does rather than by its id.
//
// It is the hex blake2b-256 digest of the endpoint, the upper-cased method
// and the canonical JSON form of body. Two writes with the same fingerprint
// would have the same effect on the server.
func Fingerprint(endpoint, method string, body []byte) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(endpoint))
	h.Write([]byte{fieldSeparator})
	h.Write([]byte(strings.ToUpper(method)))
	h.Write([]byte{fieldSeparator})
	h.Write(CanonicalJSON(body))
	return hex.EncodeToString(h.Sum(nil))
}

// CacheKey derives the read-cache key for a request. params are sorted by
// name, so the order callers build them in does not matter. syncContext
// separates caches of different tenants or sessions.
func CacheKey(syncContext, endpoint string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	h, _ := blake2b.New256(nil)
	h.Write([]byte(syncContext))
	h.Write([]byte{fieldSeparator})
	h.Write([]byte(endpoint))
	for _, name := range names {
		h.Write([]byte{fieldSeparator})
		h.Write([]byte(name))
		h.Write([]byte{'='})
		h.Write([]byte(params[name]))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ContentHash is the hex blake2b-256 digest of the canonical form of a JSON
// document. Bucket hashes computed locally use it.
func ContentHash(raw []byte) string {
	sum := blake2b.Sum256(CanonicalJSON(raw))
	return hex.EncodeToString(sum[:])
}
