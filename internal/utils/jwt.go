// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionContextClaim is the JWT claim that names the data context a session
// is bound to (tenant, workspace, role).
const SessionContextClaim = "ctx"

// ErrNoSessionContext is returned when a token carries neither a "ctx" nor a
// "sub" claim.
var ErrNoSessionContext = errors.New("token has no session context")

// ParseSessionContext extracts the sync context from an access token.
//
// The token is parsed without signature verification: the client only reads
// its own token to scope local caches, the server still validates it.
// The "ctx" claim wins; "sub" is used when "ctx" is absent or empty.
func ParseSessionContext(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("error parsing session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	if v, ok := claims[SessionContextClaim].(string); ok && v != "" {
		return v, nil
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error reading token subject: %w", err)
	}
	if sub == "" {
		return "", ErrNoSessionContext
	}
	return sub, nil
}
