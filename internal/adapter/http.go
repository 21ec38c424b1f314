// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	bundlePath = "/api/sync/bundle"
	deltaPath  = "/api/sync/delta"
	healthPath = "/api/health"

	hashHeader = "HashSHA256"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey        string
	defaultContext string

	mu          sync.RWMutex
	token       string
	syncContext string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. It normalises adapterCfg.HTTPAddress into a base URL and
// configures the request timeout. appCfg.HashKey enables the HashSHA256
// integrity header; appCfg.DefaultContext is the sync context used until a
// token names one.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client:         utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hashKey:        appCfg.HashKey,
		defaultContext: appCfg.DefaultContext,
		syncContext:    appCfg.DefaultContext,
		logger:         log,
	}
	if adapterCfg.Token != "" {
		a.SetToken(adapterCfg.Token)
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. The sync context is re-derived from
// the token's "ctx" (or "sub") claim; unreadable tokens keep the configured
// default context.
func (h *httpServerAdapter) SetToken(token string) {
	token = strings.TrimSpace(token)

	syncCtx := h.defaultContext
	if token != "" {
		parsed, err := utils.ParseSessionContext(token)
		if err != nil {
			h.logger.Warn().Err(err).Str("func", "httpServerAdapter.SetToken").
				Msg("cannot read sync context from token, using default")
		} else {
			syncCtx = parsed
		}
	}

	h.mu.Lock()
	h.token = token
	h.syncContext = syncCtx
	h.mu.Unlock()
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SyncContext implements [ContextProvider].
func (h *httpServerAdapter) SyncContext() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.syncContext
}

// Submit implements [RemoteWriter]. It sends req.Body as JSON with
// req.Method to req.Endpoint. A non-nil EntityVersion is sent as If-Match.
func (h *httpServerAdapter) Submit(ctx context.Context, req models.SubmitRequest) (json.RawMessage, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodPost
	}

	r := h.request(ctx, req.Body)
	if req.EntityVersion != nil {
		r.SetHeader("If-Match", strconv.FormatInt(*req.EntityVersion, 10))
	}

	resp, err := r.Execute(method, req.Endpoint)
	if err != nil {
		return nil, networkError(method+" "+req.Endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("func", "httpServerAdapter.Submit").
			Str("endpoint", req.Endpoint).Str("method", method).Msg("submit rejected")
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(bytes.Clone(body)), nil
}

// Load implements [RemoteReader]. It GETs endpoint with params as query
// string, adding page and page_size from cfg when set. Both the
// {items,total,has_more} envelope and a bare JSON array are accepted.
func (h *httpServerAdapter) Load(ctx context.Context, endpoint string, cfg models.LoadConfig, params map[string]string) (models.DataPage, error) {
	r := h.request(ctx, nil).SetQueryParams(params)
	if cfg.Page > 0 {
		r.SetQueryParam("page", strconv.Itoa(cfg.Page))
	}
	if cfg.PageSize > 0 {
		r.SetQueryParam("page_size", strconv.Itoa(cfg.PageSize))
	}

	resp, err := r.Get(endpoint)
	if err != nil {
		return models.DataPage{}, networkError("GET "+endpoint, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DataPage{}, err
	}

	page, err := decodeDataPage(resp.Body())
	if err != nil {
		return models.DataPage{}, &RemoteError{Kind: KindUnknown, StatusCode: resp.StatusCode(), Message: "decode page", Err: err}
	}
	return page, nil
}

func decodeDataPage(body []byte) (models.DataPage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return models.DataPage{Items: []json.RawMessage{}}, nil
	}

	if body[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return models.DataPage{}, err
		}
		return models.DataPage{Items: items}, nil
	}

	var page models.DataPage
	if err := json.Unmarshal(body, &page); err != nil {
		return models.DataPage{}, err
	}
	if page.Items == nil {
		page.Items = []json.RawMessage{}
	}
	return page, nil
}

// GetBundle implements [BundleRemote] via GET /api/sync/bundle.
func (h *httpServerAdapter) GetBundle(ctx context.Context) (models.Bundle, error) {
	var bundle models.Bundle

	resp, err := h.request(ctx, nil).SetResult(&bundle).Get(bundlePath)
	if err != nil {
		return models.Bundle{}, networkError("get bundle", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Bundle{}, err
	}

	return bundle, nil
}

// DeltaSync implements [BundleRemote] via POST /api/sync/delta.
func (h *httpServerAdapter) DeltaSync(ctx context.Context, hashes map[string]string) (models.DeltaResponse, error) {
	payload, err := json.Marshal(models.DeltaRequest{Hashes: hashes})
	if err != nil {
		return models.DeltaResponse{}, fmt.Errorf("encode delta request: %w", err)
	}

	var delta models.DeltaResponse
	resp, err := h.request(ctx, payload).SetResult(&delta).Post(deltaPath)
	if err != nil {
		return models.DeltaResponse{}, networkError("delta sync", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeltaResponse{}, err
	}

	if delta.Changed == nil {
		delta.Changed = map[string]models.BucketDelta{}
	}
	return delta, nil
}

// Ping implements [HealthChecker] via GET /api/health.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.request(ctx, nil).Get(healthPath)
	if err != nil {
		return networkError("ping", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) request(ctx context.Context, body []byte) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if len(body) > 0 {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
		if h.hashKey != "" {
			req.SetHeader(hashHeader, utils.HashString(string(body), h.hashKey))
		}
	}
	return req
}
