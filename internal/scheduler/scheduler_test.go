package scheduler

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"LegacyGuardians/internal/recorder"
)

type pruneRecorder struct {
	recorder.NoopRecorder
	cutoffs []time.Time
	err     error
}

func (p *pruneRecorder) Prune(before time.Time) (int64, error) {
	p.cutoffs = append(p.cutoffs, before)
	return 3, p.err
}

func TestRegisterAll(t *testing.T) {
	s := NewScheduler(&pruneRecorder{}, 24*time.Hour, zap.NewNop())
	if err := s.RegisterAll(""); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 1 {
		t.Errorf("registered %d jobs, want 1", got)
	}

	s = NewScheduler(&pruneRecorder{}, 24*time.Hour, zap.NewNop())
	if err := s.RegisterAll("not a cron spec"); err == nil {
		t.Error("expected error for invalid cron spec")
	}

	s = NewScheduler(&pruneRecorder{}, 0, zap.NewNop())
	if err := s.RegisterAll(DefaultPruneCron); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if got := len(s.Cron.Entries()); got != 0 {
		t.Errorf("zero retention registered %d jobs", got)
	}
}

func TestRunPruneNow_UsesRetention(t *testing.T) {
	rec := &pruneRecorder{}
	s := NewScheduler(rec, 7*24*time.Hour, zap.NewNop())
	now := time.Date(2026, 3, 15, 4, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	n, err := s.RunPruneNow()
	if err != nil {
		t.Fatalf("RunPruneNow: %v", err)
	}
	if n != 3 {
		t.Errorf("pruned %d, want 3", n)
	}
	if want := now.Add(-7 * 24 * time.Hour); len(rec.cutoffs) != 1 || !rec.cutoffs[0].Equal(want) {
		t.Errorf("cutoffs = %v, want [%v]", rec.cutoffs, want)
	}
}

func TestPruneTask_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := &pruneRecorder{err: errors.New("disk full")}
	s := NewScheduler(rec, time.Hour, zap.New(core))

	s.pruneTask()

	if got := logs.FilterMessage("prune trace").Len(); got != 1 {
		t.Errorf("logged %d prune failures, want 1", got)
	}
}
