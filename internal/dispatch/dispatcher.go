// Package dispatch sends player actions to the backend and applies the
// answer to the page.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/recorder"
)

// ErrBusy is returned when a call is issued while another one is pending.
// Nothing is sent, alerted or rendered for the rejected call.
var ErrBusy = errors.New("another backend call is in flight")

// Backend performs one HTTP exchange with the game backend.
type Backend interface {
	Call(ctx context.Context, method, endpoint string, body any) (*model.GameState, error)
}

// StateRenderer applies a GameState to the page.
type StateRenderer interface {
	Render(state *model.GameState) error
}

// Alerter shows a blocking message to the player.
type Alerter interface {
	Alert(message string)
}

// Translator formats a catalog key in the active locale.
type Translator interface {
	T(key string, args ...any) string
}

// Dispatcher runs at most one backend call at a time. Every successful call
// re-renders the page; every failed call alerts the player.
type Dispatcher struct {
	backend  Backend
	renderer StateRenderer
	alerter  Alerter
	tr       Translator
	rec      recorder.Recorder
	log      *zap.Logger

	busy atomic.Bool
}

// New creates a dispatcher.
func New(backend Backend, renderer StateRenderer, alerter Alerter, tr Translator, rec recorder.Recorder, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		backend:  backend,
		renderer: renderer,
		alerter:  alerter,
		tr:       tr,
		rec:      rec,
		log:      log,
	}
}

// Busy reports whether a call is pending.
func (d *Dispatcher) Busy() bool { return d.busy.Load() }

// Call sends one request. On success the returned state has already been
// rendered. On failure the player has been alerted and the page is
// unchanged; the error is an *api.AppError or an *api.TransportError.
func (d *Dispatcher) Call(ctx context.Context, method, endpoint string, body any) (*model.GameState, error) {
	evt := &recorder.CallEvent{
		RequestID: uuid.NewString(),
		Method:    method,
		Endpoint:  endpoint,
	}
	if action, ok := body.(model.ActionRequest); ok {
		evt.Action = string(action.Action)
	}

	if !d.busy.CompareAndSwap(false, true) {
		evt.Outcome = recorder.OutcomeBusy
		d.trace(evt)
		return nil, ErrBusy
	}
	defer d.busy.Store(false)

	start := time.Now()
	state, err := d.backend.Call(api.WithRequestID(ctx, evt.RequestID), method, endpoint, body)
	evt.Duration = time.Since(start)

	if err != nil {
		d.fail(evt, err)
		return nil, err
	}

	evt.Outcome = recorder.OutcomeOK
	evt.Level = state.CurrentLevel
	d.trace(evt)

	if err := d.renderer.Render(state); err != nil {
		d.log.Error("render game state", zap.String("request_id", evt.RequestID), zap.Error(err))
		return state, fmt.Errorf("render %s %s: %w", method, endpoint, err)
	}
	return state, nil
}

// PerformAction sends one in-level action.
func (d *Dispatcher) PerformAction(ctx context.Context, action model.ActionRequest) (*model.GameState, error) {
	return d.Call(ctx, http.MethodPost, api.EndpointPerformAction, action)
}

func (d *Dispatcher) fail(evt *recorder.CallEvent, err error) {
	var appErr *api.AppError
	if errors.As(err, &appErr) {
		evt.Outcome = recorder.OutcomeAppError
		evt.Status = appErr.Status
		evt.Message = appErr.Message
		d.trace(evt)
		d.alerter.Alert(d.tr.T("alert.operation_failed", appErr.Message))
		return
	}

	evt.Outcome = recorder.OutcomeTransport
	evt.Message = err.Error()
	d.trace(evt)
	d.alerter.Alert(d.tr.T("alert.unreachable"))
}

func (d *Dispatcher) trace(evt *recorder.CallEvent) {
	fields := []zap.Field{
		zap.String("request_id", evt.RequestID),
		zap.String("method", evt.Method),
		zap.String("endpoint", evt.Endpoint),
		zap.String("outcome", evt.Outcome),
		zap.Duration("elapsed", evt.Duration),
	}
	if evt.Action != "" {
		fields = append(fields, zap.String("action", evt.Action))
	}
	switch evt.Outcome {
	case recorder.OutcomeOK:
		d.log.Info("backend call", append(fields, zap.Int("level", evt.Level))...)
	case recorder.OutcomeBusy:
		d.log.Warn("backend call rejected", fields...)
	default:
		d.log.Warn("backend call failed", append(fields, zap.Int("status", evt.Status), zap.String("error", evt.Message))...)
	}

	if err := d.rec.RecordCall(evt); err != nil {
		d.log.Error("record call", zap.Error(err))
	}
}
