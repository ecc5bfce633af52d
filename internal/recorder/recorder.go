package recorder

import "time"

// Call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeAppError  = "app_error"
	OutcomeTransport = "transport_error"
	OutcomeBusy      = "busy"
)

// CallEvent is one backend call made by the dispatcher.
type CallEvent struct {
	RequestID string
	Method    string
	Endpoint  string
	Action    string // perform_action kind, "" otherwise
	Outcome   string
	Status    int // HTTP status of an app error, 0 otherwise
	Message   string
	Level     int // level of the returned state, 0 when none
	Duration  time.Duration
}

// LevelEvent records a level change seen by the client.
type LevelEvent struct {
	From  int
	To    int
	Route string // navigation target, "" when the client stayed on the page
}

// Recorder persists the client's call trace for later diagnosis.
type Recorder interface {
	RecordCall(evt *CallEvent) error
	RecordLevel(evt *LevelEvent) error
	// Prune deletes entries recorded before the cutoff and returns how many
	// were removed.
	Prune(before time.Time) (int64, error)
	Close() error
}
