// Package app wires the part-1 client together and exposes the player's
// controls to the frontends.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/chart"
	"LegacyGuardians/internal/dispatch"
	"LegacyGuardians/internal/i18n"
	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/navigate"
	"LegacyGuardians/internal/recorder"
	"LegacyGuardians/internal/render"
	"LegacyGuardians/internal/ui"
)

var (
	// ErrControlDisabled is returned when the player uses a control the
	// page currently shows as disabled or hidden.
	ErrControlDisabled = errors.New("control is disabled")
	// ErrNoSuchOption is returned for a deposit option the page does not show.
	ErrNoSuchOption = errors.New("no such deposit option")
)

type optionError struct{ n int }

func (e *optionError) Error() string  { return fmt.Sprintf("deposit option %d: %v", e.n, ErrNoSuchOption) }
func (e *optionError) Unwrap() error { return ErrNoSuchOption }

// Confirmation prompts of the controls that ask before acting.
const (
	ConfirmReset    = "confirm.reset"
	ConfirmAdvance1 = "confirm.advance_level1"
	ConfirmAdvance2 = "confirm.advance_level2"
)

// Options configures a Game.
type Options struct {
	Backend     dispatch.Backend
	Alerter     dispatch.Alerter
	Navigator   navigate.Navigator
	Recorder    recorder.Recorder
	Locale      model.Locale
	Level3Route string
	ChartWidth  int
	ChartHeight int
	Log         *zap.Logger
}

// Game is the application context of one client: the page, its bindings,
// the price chart, the localizer, the renderer and the dispatcher.
type Game struct {
	Doc        *ui.Document
	Bind       *ui.Bindings
	Chart      *chart.PriceChart
	Loc        *i18n.Localizer
	Renderer   *render.Renderer
	Dispatcher *dispatch.Dispatcher

	nav   navigate.Navigator
	rec   recorder.Recorder
	route string
	log   *zap.Logger

	mu       sync.Mutex
	level    int
	departed string
}

// New builds a game on a fresh page. It fails when the page does not carry
// every bound element.
func New(cat *i18n.Catalog, opts Options) (*Game, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	if opts.Locale == "" {
		opts.Locale = model.DefaultLocale
	}
	if opts.Navigator == nil {
		opts.Navigator = navigate.NewRouter(api.DefaultBaseURL)
	}
	if opts.Level3Route == "" {
		opts.Level3Route = navigate.Level3Route
	}

	doc := ui.NewGamePage()
	bind, err := ui.Bind(doc, ui.GameBindings)
	if err != nil {
		return nil, fmt.Errorf("build game page: %w", err)
	}
	pc := chart.NewPriceChart(opts.ChartWidth, opts.ChartHeight)
	loc := i18n.NewLocalizer(cat, bind, opts.Locale, opts.Log.Named("i18n"))
	r := render.New(bind, pc, loc, opts.Log.Named("render"))

	return &Game{
		Doc:        doc,
		Bind:       bind,
		Chart:      pc,
		Loc:        loc,
		Renderer:   r,
		Dispatcher: dispatch.New(opts.Backend, r, opts.Alerter, loc, opts.Recorder, opts.Log.Named("dispatch")),
		nav:        opts.Navigator,
		rec:        opts.Recorder,
		route:      opts.Level3Route,
		log:        opts.Log,
	}, nil
}

// Start labels the page and loads the current state from the backend.
func (g *Game) Start(ctx context.Context) error {
	g.Loc.Seed()
	_, err := g.call(ctx, http.MethodGet, api.EndpointGameState, nil)
	return err
}

// Level returns the level whose scene is shown, 0 before the first render.
func (g *Game) Level() int {
	var level int
	g.Doc.Read(func() { level = g.Bind.ActiveLevel() })
	return level
}

// Deposit picks the n-th deposit option of level 1, counting from 1.
func (g *Game) Deposit(ctx context.Context, n int) error {
	var action model.ActionRequest
	found := false
	g.Doc.Read(func() {
		if g.Bind.ActiveLevel() != 1 {
			return
		}
		controls := g.Bind.Element(ui.L1RateOptions).Controls
		if n >= 1 && n <= len(controls) {
			action, found = controls[n-1].Action, true
		}
	})
	if !found {
		return &optionError{n: n}
	}
	_, err := g.call(ctx, http.MethodPost, api.EndpointPerformAction, action)
	return err
}

// SetQuantity replaces the text of the level-2 quantity input.
func (g *Game) SetQuantity(text string) {
	g.Doc.Update(func() { g.Bind.Element(ui.L2Quantity).Text = text })
}

// Quantity returns the text of the level-2 quantity input.
func (g *Game) Quantity() string {
	return g.Doc.Text(ui.L2Quantity)
}

// Buy buys the quantity typed into the input, unparsed.
func (g *Game) Buy(ctx context.Context) error {
	return g.level2Action(ctx, model.Buy(g.Quantity()))
}

// Sell sells the quantity typed into the input, unparsed.
func (g *Game) Sell(ctx context.Context) error {
	return g.level2Action(ctx, model.Sell(g.Quantity()))
}

// NextDay lets one market day pass.
func (g *Game) NextDay(ctx context.Context) error {
	return g.level2Action(ctx, model.NextDay())
}

func (g *Game) level2Action(ctx context.Context, action model.ActionRequest) error {
	if g.Level() != 2 {
		return fmt.Errorf("%s: %w", action.Action, ErrControlDisabled)
	}
	_, err := g.call(ctx, http.MethodPost, api.EndpointPerformAction, action)
	return err
}

// Departed returns the route the player was sent to, "" while the player is
// still on this page.
func (g *Game) Departed() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.departed
}

// CanAdvance reports whether the advance control of the shown scene can be
// pressed.
func (g *Game) CanAdvance() error {
	if g.Level() == 2 {
		return g.enabled(2, ui.L2AdvanceButton)
	}
	return g.enabled(1, ui.L1AdvanceButton)
}

// AdvancePrompt returns the confirmation key of the advance control of the
// shown scene.
func (g *Game) AdvancePrompt() string {
	if g.Level() == 2 {
		return ConfirmAdvance2
	}
	return ConfirmAdvance1
}

// Advance presses the advance control of the shown scene.
func (g *Game) Advance(ctx context.Context) error {
	switch g.Level() {
	case 1:
		return g.AdvanceLevel1(ctx)
	case 2:
		return g.AdvanceLevel2(ctx)
	}
	return fmt.Errorf("advance: %w", ErrControlDisabled)
}

// AdvanceLevel1 moves from level 1 to level 2. It never leaves the page.
func (g *Game) AdvanceLevel1(ctx context.Context) error {
	if err := g.enabled(1, ui.L1AdvanceButton); err != nil {
		return err
	}
	_, err := g.call(ctx, http.MethodPost, api.EndpointAdvanceLevel, nil)
	return err
}

// AdvanceLevel2 moves on from level 2. When the backend answers with level
// 3 the player is sent to the level-3 page.
func (g *Game) AdvanceLevel2(ctx context.Context) error {
	if err := g.enabled(2, ui.L2AdvanceButton); err != nil {
		return err
	}
	state, err := g.call(ctx, http.MethodPost, api.EndpointAdvanceLevel, nil)
	if err != nil {
		return err
	}
	if state.CurrentLevel == 3 {
		g.log.Info("leaving for level 3", zap.String("route", g.route))
		g.recordLevel(2, 3, g.route)
		g.mu.Lock()
		g.departed = g.route
		g.mu.Unlock()
		g.nav.Navigate(g.route)
	}
	return nil
}

// Reset restarts the game from level 1.
func (g *Game) Reset(ctx context.Context) error {
	_, err := g.call(ctx, http.MethodPost, api.EndpointReset, nil)
	return err
}

// ToggleLocale switches the page between zh and en.
func (g *Game) ToggleLocale() {
	g.Loc.Switch(true)
}

// Explain returns the message to show for an error returned by a control,
// or "" when the player has already been alerted about it.
func (g *Game) Explain(err error) string {
	var appErr *api.AppError
	var tErr *api.TransportError
	var optErr *optionError
	switch {
	case err == nil, errors.As(err, &appErr), errors.As(err, &tErr):
		return ""
	case errors.Is(err, dispatch.ErrBusy):
		return g.Loc.T("alert.busy")
	case errors.Is(err, ErrControlDisabled):
		return g.Loc.T("alert.disabled")
	case errors.As(err, &optErr):
		return g.Loc.T("alert.no_option", optErr.n)
	}
	return err.Error()
}

func (g *Game) enabled(level int, id ui.ElementID) error {
	ok := false
	g.Doc.Read(func() {
		ok = g.Bind.ActiveLevel() == level && !g.Bind.Element(id).Disabled
	})
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrControlDisabled)
	}
	return nil
}

func (g *Game) call(ctx context.Context, method, endpoint string, body any) (*model.GameState, error) {
	state, err := g.Dispatcher.Call(ctx, method, endpoint, body)
	if state != nil && state.CurrentLevel < 3 {
		g.mu.Lock()
		from := g.level
		g.level = state.CurrentLevel
		g.mu.Unlock()
		if from != 0 && from != state.CurrentLevel {
			g.recordLevel(from, state.CurrentLevel, "")
		}
	}
	return state, err
}

func (g *Game) recordLevel(from, to int, route string) {
	if err := g.rec.RecordLevel(&recorder.LevelEvent{From: from, To: to, Route: route}); err != nil {
		g.log.Error("record level change", zap.Error(err))
	}
}
