// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a remote failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNetwork means the request never produced a response.
	KindNetwork
	// KindServer is a 5xx or 429 response.
	KindServer
	// KindConflict is a 409 or 412 response: the precondition was stale.
	KindConflict
	// KindNotFound is a 404 response.
	KindNotFound
	// KindGone is a 410 response.
	KindGone
	// KindUnauthorized is a 401 or 403 response.
	KindUnauthorized
	// KindBadRequest is any other 4xx response.
	KindBadRequest
)

var (
	ErrNetwork      = errors.New("network failure")
	ErrServer       = errors.New("server error")
	ErrConflict     = errors.New("version conflict")
	ErrNotFound     = errors.New("entity not found")
	ErrGone         = errors.New("entity gone")
	ErrUnauthorized = errors.New("client unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrUnexpected   = errors.New("unexpected remote response")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindServer:
		return ErrServer
	case KindConflict:
		return ErrConflict
	case KindNotFound:
		return ErrNotFound
	case KindGone:
		return ErrGone
	case KindUnauthorized:
		return ErrUnauthorized
	case KindBadRequest:
		return ErrBadRequest
	default:
		return ErrUnexpected
	}
}

func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// RemoteError is the error type returned by every adapter operation.
type RemoteError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := e.Kind.String()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (http %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind, so errors.Is(err, ErrConflict) works
// without unwrapping by hand.
func (e *RemoteError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the kind of the first *RemoteError in err's chain, or
// KindUnknown.
func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// IsConflict reports a stale optimistic-concurrency precondition.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// IsEntityDeleted reports that the target entity no longer exists remotely.
func IsEntityDeleted(err error) bool {
	k := KindOf(err)
	return k == KindNotFound || k == KindGone
}

// IsRetryable reports failures worth retrying: the network, 5xx and
// anything not classified as a remote answer.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindServer, KindUnknown:
		return true
	default:
		return false
	}
}

func networkError(op string, err error) error {
	return &RemoteError{Kind: KindNetwork, Message: op, Err: err}
}
