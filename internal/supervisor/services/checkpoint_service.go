// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package services

import (
	"context"
	"time"

	"github.com/tomtom215/netsight/internal/logging"
)

// DefaultCheckpointInterval is used when NewCheckpointService gets a
// non-positive interval.
const DefaultCheckpointInterval = 5 * time.Minute

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService folds the DuckDB write-ahead log into the database file
// on a fixed interval, so a crash after a burst of imports replays a short
// log on restart.
//
// A failed checkpoint is logged and retried on the next tick; it never
// fails the service.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService checkpoints db every interval.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.db.Checkpoint(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logging.Warn().Err(err).Msg("Database checkpoint failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Database checkpoint complete")
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *CheckpointService) String() string {
	return "db-checkpoint"
}
