package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "trace.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func countRows(t *testing.T, r *SQLiteRecorder, table string) int {
	t.Helper()
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSQLiteRecorder_RecordCall(t *testing.T) {
	r := openTestRecorder(t)
	evt := &CallEvent{
		RequestID: "req-1",
		Method:    "POST",
		Endpoint:  "/api/perform_action",
		Action:    "buy",
		Outcome:   OutcomeAppError,
		Status:    400,
		Message:   "not enough cash",
		Duration:  1500 * time.Millisecond,
	}
	if err := r.RecordCall(evt); err != nil {
		t.Fatalf("RecordCall: %v", err)
	}

	var outcome, message string
	var status int
	var ms int64
	err := r.db.QueryRow(`SELECT outcome, status, message, duration_ms FROM call_trace WHERE request_id = ?`, "req-1").
		Scan(&outcome, &status, &message, &ms)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if outcome != OutcomeAppError || status != 400 || message != "not enough cash" || ms != 1500 {
		t.Errorf("got (%s, %d, %s, %d)", outcome, status, message, ms)
	}
}

func TestSQLiteRecorder_Prune(t *testing.T) {
	r := openTestRecorder(t)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	r.now = func() time.Time { return base.Add(-48 * time.Hour) }
	if err := r.RecordCall(&CallEvent{RequestID: "old", Outcome: OutcomeOK}); err != nil {
		t.Fatal(err)
	}
	if err := r.RecordLevel(&LevelEvent{From: 1, To: 2}); err != nil {
		t.Fatal(err)
	}
	r.now = func() time.Time { return base }
	if err := r.RecordCall(&CallEvent{RequestID: "new", Outcome: OutcomeOK}); err != nil {
		t.Fatal(err)
	}

	n, err := r.Prune(base.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned %d rows, want 2", n)
	}
	if got := countRows(t, r, "call_trace"); got != 1 {
		t.Errorf("call_trace has %d rows, want 1", got)
	}
	if got := countRows(t, r, "level_events"); got != 0 {
		t.Errorf("level_events has %d rows, want 0", got)
	}
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")
	r, err := NewSQLiteRecorder(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := r.RecordLevel(&LevelEvent{From: 2, To: 3, Route: "/game/part2"}); err != nil {
		t.Fatal(err)
	}
	r.Close()

	r2, err := NewSQLiteRecorder(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()
	if got := countRows(t, r2, "level_events"); got != 1 {
		t.Errorf("level_events has %d rows after reopen, want 1", got)
	}
}
