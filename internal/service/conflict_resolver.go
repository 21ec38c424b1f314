// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-offline-sync/models"

// StrategyLastWriteWins tags conflicts resolved by overwriting the server.
const StrategyLastWriteWins = "last-write-wins"

type lastWriteWinsResolver struct{}

// NewLastWriteWinsResolver returns the default policy: local writes to
// deleted entities are dropped, every other conflict is resubmitted once
// without the version check.
func NewLastWriteWinsResolver() ConflictResolver {
	return lastWriteWinsResolver{}
}

func (lastWriteWinsResolver) Resolve(m models.Mutation, entityDeleted bool) models.ConflictDecision {
	if entityDeleted {
		return models.ConflictDecision{
			Resolution: models.ResolutionSkip,
			Event: models.ConflictEvent{
				Kind:       models.ConflictEntityDeleted,
				MutationID: m.ID,
				Endpoint:   m.Endpoint,
			},
		}
	}

	return models.ConflictDecision{
		Resolution: models.ResolutionRetryWithoutCheck,
		Event: models.ConflictEvent{
			Kind:       models.ConflictResolved,
			MutationID: m.ID,
			Endpoint:   m.Endpoint,
			Strategy:   StrategyLastWriteWins,
		},
	}
}
