package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skovtun/lightning-node-registry/internal/scheduler"
	"go.uber.org/zap"
)

type countingImporter struct {
	runs    atomic.Int64
	err     error
	runTime time.Duration
}

func (c *countingImporter) ImportAll(ctx context.Context) (int, error) {
	if c.runTime > 0 {
		time.Sleep(c.runTime)
	}
	c.runs.Add(1)
	if c.err != nil {
		return 0, c.err
	}
	return 1, nil
}

func waitForRuns(t *testing.T, imp *countingImporter, want int64, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if imp.runs.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least %d runs within %v, got %d", want, timeout, imp.runs.Load())
}

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	// With an hour-long interval the only way a run can happen is the
	// immediate one before the first tick.
	imp := &countingImporter{}
	sched := scheduler.New(imp, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)

	waitForRuns(t, imp, 1, time.Second)

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := sched.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	imp := &countingImporter{}
	sched := scheduler.New(imp, 20*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)

	waitForRuns(t, imp, 3, time.Second)

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := sched.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestScheduler_SwallowsImportErrors(t *testing.T) {
	imp := &countingImporter{err: errors.New("feed unavailable")}
	sched := scheduler.New(imp, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)

	// Failures must not stop the loop.
	waitForRuns(t, imp, 3, time.Second)

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := sched.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestScheduler_StopWaitsForInFlightRun(t *testing.T) {
	imp := &countingImporter{runTime: 50 * time.Millisecond}
	sched := scheduler.New(imp, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)

	// Cancel while the initial run is still sleeping.
	time.Sleep(10 * time.Millisecond)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := sched.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}

	if imp.runs.Load() != 1 {
		t.Errorf("in-flight run must complete before stop returns, got %d runs", imp.runs.Load())
	}
}

func TestScheduler_StopTimesOut(t *testing.T) {
	imp := &countingImporter{runTime: 200 * time.Millisecond}
	sched := scheduler.New(imp, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched.Start(ctx)
	time.Sleep(10 * time.Millisecond)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer stopCancel()
	if err := sched.Stop(stopCtx); err == nil {
		t.Fatal("expected timeout error when the run outlives the stop deadline")
	}

	// Drain so the goroutine does not outlive the test.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), time.Second)
	defer drainCancel()
	if err := sched.Stop(drainCtx); err != nil {
		t.Fatalf("loop never exited: %v", err)
	}
}
