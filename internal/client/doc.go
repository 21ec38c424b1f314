// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the offline-sync client runtime.
//
// It builds storages, the HTTP adapter, connectivity health checks and the sync
// services from a [config.ClientConfig], runs an initial reconciliation and
// keeps the background workers alive for the lifetime of the process.
package client
