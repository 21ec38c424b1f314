// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const maxErrorBody = 512

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if body == "" {
		body = http.StatusText(code)
	}

	return &RemoteError{Kind: kindForStatus(code), StatusCode: code, Message: body}
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusConflict, code == http.StatusPreconditionFailed:
		return KindConflict
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusGone:
		return KindGone
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindUnauthorized
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return KindServer
	case code >= http.StatusBadRequest:
		return KindBadRequest
	default:
		return KindUnknown
	}
}
