// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// SyncPhase enumerates the states of a synchronization process.
type SyncPhase int

const (
	SyncIdle SyncPhase = iota
	SyncSyncing
	SyncCompleted
	SyncSynced
	SyncStale
	SyncError
)

func (p SyncPhase) String() string {
	switch p {
	case SyncIdle:
		return "idle"
	case SyncSyncing:
		return "syncing"
	case SyncCompleted:
		return "completed"
	case SyncSynced:
		return "synced"
	case SyncStale:
		return "stale"
	case SyncError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// SyncState is the coarse progress value shown to the user.
//
// Current/Total are set while Syncing, At for Synced and Stale (the time of
// the last successful sync), Message for Error. Stale and Error are not
// terminal: the next attempt goes back to Syncing.
type SyncState struct {
	Phase   SyncPhase
	Current int
	Total   int
	At      time.Time
	Message string
}

func IdleState() SyncState { return SyncState{Phase: SyncIdle} }

func SyncingState(current, total int) SyncState {
	return SyncState{Phase: SyncSyncing, Current: current, Total: total}
}

func CompletedState() SyncState { return SyncState{Phase: SyncCompleted} }

func SyncedState(at time.Time) SyncState { return SyncState{Phase: SyncSynced, At: at} }

func StaleState(lastSynced time.Time) SyncState {
	return SyncState{Phase: SyncStale, At: lastSynced}
}

func ErrorState(msg string) SyncState { return SyncState{Phase: SyncError, Message: msg} }

func (s SyncState) String() string {
	switch s.Phase {
	case SyncSyncing:
		return fmt.Sprintf("syncing %d/%d", s.Current, s.Total)
	case SyncSynced, SyncStale:
		return fmt.Sprintf("%s at %s", s.Phase, s.At.Format(time.RFC3339))
	case SyncError:
		return "error: " + s.Message
	default:
		return s.Phase.String()
	}
}
