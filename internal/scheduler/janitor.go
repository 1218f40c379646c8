// Package scheduler triggers periodic maintenance through the task queue.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pmaren/bookannex/internal/config"
	"github.com/pmaren/bookannex/internal/tasks"
)

// JanitorScheduler enqueues an orphan sweep on a cron schedule. The sweep
// itself runs on the task queue, so a slow library never blocks the cron
// goroutine.
type JanitorScheduler struct {
	tasksClient *tasks.Client
	cfg         config.Janitor

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewJanitorScheduler creates a new scheduler instance
func NewJanitorScheduler(tasksClient *tasks.Client, cfg config.Janitor) *JanitorScheduler {
	return &JanitorScheduler{
		tasksClient: tasksClient,
		cfg:         cfg,
		cron:        cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the janitor is enabled
func (s *JanitorScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Janitor scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.enqueueSweep()
	})
	if err != nil {
		return fmt.Errorf("invalid janitor schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Janitor scheduler: started with schedule '%s'", s.cfg.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *JanitorScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	// Release the watcher goroutine started in Start.
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Janitor scheduler: stopped")
}

// RunNow enqueues an immediate sweep
func (s *JanitorScheduler) RunNow() error {
	_, err := s.tasksClient.Add(tasks.CleanupOrphanThingsTask{}).Save()
	return err
}

// IsRunning returns whether the scheduler is active
func (s *JanitorScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next sweep will be enqueued
func (s *JanitorScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *JanitorScheduler) enqueueSweep() {
	if _, err := s.tasksClient.Add(tasks.CleanupOrphanThingsTask{}).Save(); err != nil {
		log.Printf("Janitor scheduler: failed to enqueue sweep: %v", err)
		return
	}
	log.Printf("Janitor scheduler: orphan sweep enqueued")
}
