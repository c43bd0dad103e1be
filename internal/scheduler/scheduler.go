// Package scheduler runs the periodic import loop.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ImportRunner triggers a full node import
type ImportRunner interface {
	ImportAll(ctx context.Context) (int, error)
}

// Scheduler invokes the importer once immediately on start and then once
// per interval, forever. Import failures are logged and swallowed; the loop
// only stops when its context is cancelled.
type Scheduler struct {
	importer ImportRunner
	interval time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// New creates a new scheduler
func New(importer ImportRunner, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		importer: importer,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the import loop. Cancelling ctx stops the loop after the
// run in flight (if any) completes; use Stop to wait for that.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting periodic import loop",
		zap.Duration("interval", s.interval),
	)

	go func() {
		defer close(s.done)

		// Immediate first run so the service does not sit empty until the
		// first tick.
		s.run()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("scheduler context cancelled, stopping import loop")
				return
			case <-ticker.C:
				s.run()
			}
		}
	}()
}

// run performs one import on a background context so that shutdown never
// aborts a transaction in flight.
func (s *Scheduler) run() {
	count, err := s.importer.ImportAll(context.Background())
	if err != nil {
		// Terminal for this tick only; the next tick retries.
		s.logger.Error("scheduled import failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled import succeeded", zap.Int("count", count))
}

// Stop waits for the loop goroutine to exit, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for import loop to stop: %w", ctx.Err())
	}
}
