// Package scheduler runs the client's housekeeping jobs on cron schedules.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"LegacyGuardians/internal/recorder"
)

// DefaultPruneCron runs the trace pruning every day at 04:00.
const DefaultPruneCron = "0 0 4 * * *"

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Recorder  recorder.Recorder
	Retention time.Duration
	Log       *zap.Logger

	now func() time.Time
}

// NewScheduler creates a scheduler that keeps retention worth of trace.
func NewScheduler(rec recorder.Recorder, retention time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Recorder:  rec,
		Retention: retention,
		Log:       log,
		now:       time.Now,
	}
}

// RegisterAll registers the trace pruning task. A zero retention keeps the
// trace forever and registers nothing.
func (s *Scheduler) RegisterAll(pruneCron string) error {
	if s.Retention <= 0 {
		s.Log.Info("trace retention disabled, pruning not scheduled")
		return nil
	}
	if pruneCron == "" {
		pruneCron = DefaultPruneCron
	}
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunPruneNow prunes the trace immediately.
func (s *Scheduler) RunPruneNow() (int64, error) {
	cutoff := s.now().Add(-s.Retention)
	n, err := s.Recorder.Prune(cutoff)
	if err != nil {
		return n, fmt.Errorf("prune trace before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

func (s *Scheduler) pruneTask() {
	n, err := s.RunPruneNow()
	if err != nil {
		s.Log.Error("prune trace", zap.Error(err))
		return
	}
	s.Log.Info("trace pruned", zap.Int64("rows", n), zap.Duration("retention", s.Retention))
}
