package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/pmaren/bookannex/internal/entities"
)

// ThingSweeper removes overlay rows whose library entity is gone.
type ThingSweeper interface {
	SweepOrphans(exists func(kind entities.Kind, calibreID int64) bool) (int, error)
}

// EntityChecker answers whether a library entity still exists. The check
// must err on the side of "exists" when the library is unreadable.
type EntityChecker interface {
	HasEntity(kind entities.Kind, id int64) bool
	Ok() bool
}

// CleanupOrphanThingsTask removes overlay data for entities that were
// deleted from the Calibre library since the last sweep.
type CleanupOrphanThingsTask struct{}

// Config returns the queue configuration for orphan cleanup tasks.
func (t CleanupOrphanThingsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_orphan_things",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupOrphanThingsProcessor creates a processor function for
// CleanupOrphanThingsTask.
func CleanupOrphanThingsProcessor(sweeper ThingSweeper, checker EntityChecker) backlite.QueueProcessor[CleanupOrphanThingsTask] {
	return func(ctx context.Context, task CleanupOrphanThingsTask) error {
		if sweeper == nil || checker == nil {
			return fmt.Errorf("orphan cleanup not configured")
		}
		if !checker.Ok() {
			// An unreadable library says nothing about deleted entities.
			log.Printf("[TASK] Skipping orphan sweep, library not usable")
			return nil
		}

		removed, err := sweeper.SweepOrphans(checker.HasEntity)
		if err != nil {
			return fmt.Errorf("cleanup orphan things: %w", err)
		}

		log.Printf("[TASK] Removed %d orphaned overlay entries", removed)
		return nil
	}
}

// NewCleanupOrphanThingsQueue creates a backlite queue for orphan cleanup tasks.
func NewCleanupOrphanThingsQueue(sweeper ThingSweeper, checker EntityChecker) backlite.Queue {
	return backlite.NewQueue(CleanupOrphanThingsProcessor(sweeper, checker))
}
