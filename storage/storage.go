/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one saved estimate.
type Record struct {
	ID              uuid.UUID
	PdgaNum         int
	EstimatedAt     time.Time
	CurrentRating   int
	EstimatedRating int
	Counted         int
	// number of manually entered rounds
	Manual int
}

// HistoryStore persists estimates.
type HistoryStore interface {
	Save(ctx context.Context, rec Record) (Record, error)
	// List returns up to limit records for the player, newest first.
	List(ctx context.Context, pdgaNum int, limit int) ([]Record, error)
	Close() error
}
