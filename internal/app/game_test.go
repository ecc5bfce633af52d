package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/dispatch"
	"LegacyGuardians/internal/i18n"
	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/navigate"
	"LegacyGuardians/internal/recorder"
	"LegacyGuardians/internal/ui"
)

type call struct {
	Method, Endpoint string
	Body             any
}

// scriptedBackend answers each call with the next queued state or error.
type scriptedBackend struct {
	mu      sync.Mutex
	calls   []call
	answers []answer
}

type answer struct {
	state *model.GameState
	err   error
}

func (b *scriptedBackend) push(state *model.GameState, err error) {
	b.answers = append(b.answers, answer{state, err})
}

func (b *scriptedBackend) Call(ctx context.Context, method, endpoint string, body any) (*model.GameState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{method, endpoint, body})
	if len(b.answers) == 0 {
		return nil, &api.TransportError{Op: method + " " + endpoint, Err: errors.New("no answer queued")}
	}
	a := b.answers[0]
	b.answers = b.answers[1:]
	return a.state, a.err
}

func (b *scriptedBackend) last() call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

type alerts struct{ msgs []string }

func (a *alerts) Alert(msg string) { a.msgs = append(a.msgs, msg) }

type levelLog struct {
	recorder.NoopRecorder
	events []recorder.LevelEvent
}

func (l *levelLog) RecordLevel(evt *recorder.LevelEvent) error {
	l.events = append(l.events, *evt)
	return nil
}

type harness struct {
	game    *Game
	backend *scriptedBackend
	router  *navigate.Router
	alerts  *alerts
	levels  *levelLog
}

func newHarness(t *testing.T, first *model.GameState) *harness {
	t.Helper()
	cat, err := i18n.Load()
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{
		backend: &scriptedBackend{},
		router:  navigate.NewRouter("http://127.0.0.1:5002"),
		alerts:  &alerts{},
		levels:  &levelLog{},
	}
	h.game, err = New(cat, Options{
		Backend:   h.backend,
		Alerter:   h.alerts,
		Navigator: h.router,
		Recorder:  h.levels,
		Locale:    model.LocaleEN,
		Log:       zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.backend.push(first, nil)
	if err := h.game.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return h
}

func level1(goalMet bool) *model.GameState {
	return &model.GameState{
		CurrentLevel:   1,
		Principal:      model.NewAmount(1000),
		Goal:           model.NewAmount(1100),
		IsGoalMet:      goalMet,
		AvailableRates: []model.RateOption{{Period: 30, Rate: 0.015}, {Period: 365, Rate: 0.035}},
	}
}

func level2(goalMet bool) *model.GameState {
	return &model.GameState{
		CurrentLevel: 2,
		Cash:         model.NewAmount(5000),
		IsGoalMet:    goalMet,
		PriceHistory: []model.PricePoint{{Date: "d1", Price: model.NewAmount(10)}},
	}
}

func TestStart_RendersLevel1(t *testing.T) {
	h := newHarness(t, level1(false))
	if h.game.Level() != 1 {
		t.Fatalf("level = %d", h.game.Level())
	}
	if got := h.game.Doc.Text(ui.MainTitle); got != "Legacy Guardians - Level 1" {
		t.Errorf("title = %q", got)
	}
	if c := h.backend.last(); c.Endpoint != api.EndpointGameState {
		t.Errorf("first call went to %s", c.Endpoint)
	}
}

func TestDeposit_SendsOptionPayload(t *testing.T) {
	h := newHarness(t, level1(false))
	h.backend.push(level1(true), nil)

	if err := h.game.Deposit(context.Background(), 2); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	got := h.backend.last().Body
	if got != model.Deposit(365, 0.035) {
		t.Errorf("body = %+v", got)
	}

	err := h.game.Deposit(context.Background(), 5)
	if !errors.Is(err, ErrNoSuchOption) {
		t.Fatalf("expected ErrNoSuchOption, got %v", err)
	}
	if msg := h.game.Explain(err); msg != "There is no deposit option 5." {
		t.Errorf("explain = %q", msg)
	}
}

func TestAdvanceLevel1_DisabledUntilGoalMet(t *testing.T) {
	h := newHarness(t, level1(false))
	if err := h.game.AdvanceLevel1(context.Background()); !errors.Is(err, ErrControlDisabled) {
		t.Fatalf("expected ErrControlDisabled, got %v", err)
	}
	if len(h.backend.calls) != 1 {
		t.Errorf("disabled control reached the backend")
	}
}

func TestAdvanceLevel1_NeverNavigates(t *testing.T) {
	h := newHarness(t, level1(true))
	h.backend.push(level2(false), nil)

	if err := h.game.AdvanceLevel1(context.Background()); err != nil {
		t.Fatalf("AdvanceLevel1: %v", err)
	}
	if h.game.Level() != 2 {
		t.Errorf("level = %d, want 2", h.game.Level())
	}
	if h.router.Last() != "" {
		t.Errorf("navigated to %q", h.router.Last())
	}
	if len(h.levels.events) != 1 || h.levels.events[0] != (recorder.LevelEvent{From: 1, To: 2}) {
		t.Errorf("level events = %+v", h.levels.events)
	}
}

func TestAdvanceLevel2_NavigatesOnLevel3(t *testing.T) {
	h := newHarness(t, level2(true))
	h.backend.push(&model.GameState{CurrentLevel: 3}, nil)

	if err := h.game.AdvanceLevel2(context.Background()); err != nil {
		t.Fatalf("AdvanceLevel2: %v", err)
	}
	if h.router.Last() != navigate.Level3Route {
		t.Errorf("route = %q, want %q", h.router.Last(), navigate.Level3Route)
	}
	if h.game.Departed() != navigate.Level3Route {
		t.Errorf("departed = %q", h.game.Departed())
	}
	if h.game.Level() != 2 {
		t.Errorf("level-3 answer changed the page: level %d", h.game.Level())
	}
}

func TestAdvanceLevel2_StaysWhenBackendSaysLevel2(t *testing.T) {
	h := newHarness(t, level2(true))
	h.backend.push(level2(true), nil)

	if err := h.game.AdvanceLevel2(context.Background()); err != nil {
		t.Fatalf("AdvanceLevel2: %v", err)
	}
	if h.router.Last() != "" {
		t.Errorf("navigated to %q", h.router.Last())
	}
}

func TestAdvanceLevel2_FailureDoesNotNavigate(t *testing.T) {
	h := newHarness(t, level2(true))
	h.backend.push(nil, &api.AppError{Status: 400, Message: "goal not met"})

	err := h.game.AdvanceLevel2(context.Background())
	var appErr *api.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *api.AppError, got %v", err)
	}
	if h.router.Last() != "" {
		t.Errorf("navigated after failure")
	}
	if len(h.alerts.msgs) != 1 || !strings.Contains(h.alerts.msgs[0], "goal not met") {
		t.Errorf("alerts = %v", h.alerts.msgs)
	}
	if h.game.Explain(err) != "" {
		t.Error("alerted error explained twice")
	}
}

func TestBuy_SendsRawQuantity(t *testing.T) {
	h := newHarness(t, level2(false))
	h.backend.push(level2(false), nil)

	h.game.SetQuantity("abc")
	if err := h.game.Buy(context.Background()); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if got := h.backend.last().Body; got != model.Buy("abc") {
		t.Errorf("body = %+v", got)
	}
}

func TestLevel2Actions_RejectedOnLevel1(t *testing.T) {
	h := newHarness(t, level1(false))
	for name, fn := range map[string]func(context.Context) error{
		"buy": h.game.Buy, "sell": h.game.Sell, "next": h.game.NextDay,
	} {
		if err := fn(context.Background()); !errors.Is(err, ErrControlDisabled) {
			t.Errorf("%s: expected ErrControlDisabled, got %v", name, err)
		}
	}
}

func TestToggleLocale(t *testing.T) {
	h := newHarness(t, level1(false))
	h.game.ToggleLocale()
	if h.game.Loc.Locale() != model.LocaleZH {
		t.Fatalf("locale = %s", h.game.Loc.Locale())
	}
	if got := h.game.Doc.Text(ui.MainTitle); got != "Legacy Guardians - 第 1 关" {
		t.Errorf("title = %q", got)
	}
}

func TestExplain_Busy(t *testing.T) {
	h := newHarness(t, level1(false))
	if got := h.game.Explain(dispatch.ErrBusy); got == "" {
		t.Error("busy error not explained")
	}
}
