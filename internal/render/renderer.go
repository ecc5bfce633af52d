// Package render writes a GameState into the bound page.
package render

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"LegacyGuardians/internal/chart"
	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/ui"
)

// ErrUnknownScene is returned for a level below 3 that has no scene on the
// page.
var ErrUnknownScene = errors.New("no scene for level")

// Translator formats a catalog key in the active locale.
type Translator interface {
	T(key string, args ...any) string
}

// Renderer maps a GameState onto the page elements and the price chart.
type Renderer struct {
	bind  *ui.Bindings
	chart *chart.PriceChart
	tr    Translator
	log   *zap.Logger
}

// New creates a renderer writing through bind.
func New(bind *ui.Bindings, pc *chart.PriceChart, tr Translator, log *zap.Logger) *Renderer {
	return &Renderer{bind: bind, chart: pc, tr: tr, log: log}
}

// Render shows the scene of state.CurrentLevel and fills it. Levels from 3
// on are played elsewhere and leave the page untouched.
func (r *Renderer) Render(state *model.GameState) error {
	if state == nil || state.CurrentLevel >= 3 {
		return nil
	}

	var err error
	redraw := false
	r.bind.Document().Update(func() {
		for _, level := range r.bind.Levels() {
			scene, _ := r.bind.Scene(level)
			scene.Active = false
		}
		scene, ok := r.bind.Scene(state.CurrentLevel)
		if !ok {
			err = fmt.Errorf("render level %d: %w", state.CurrentLevel, ErrUnknownScene)
			return
		}
		scene.Active = true
		indicator := r.bind.Element(ui.LevelIndicator)
		indicator.Text = strconv.Itoa(state.CurrentLevel)
		for _, label := range r.bind.Labels(0) {
			if label.Arg == indicator {
				label.El.Text = r.tr.T(label.Key, indicator.Text)
			}
		}

		switch state.CurrentLevel {
		case 1:
			r.renderLevel1(state)
		case 2:
			r.renderLevel2(state)
			redraw = true
		}
	})
	if err != nil {
		return err
	}
	if redraw {
		r.chart.Update()
	}
	r.log.Debug("state rendered", zap.Int("level", state.CurrentLevel), zap.Bool("goal_met", state.IsGoalMet))
	return nil
}

func (r *Renderer) renderLevel1(state *model.GameState) {
	r.bind.Element(ui.L1Principal).Text = FormatCurrency(state.Principal)
	r.bind.Element(ui.L1Interest).Text = FormatCurrency(state.InterestEarned)
	r.bind.Element(ui.L1Goal).Text = FormatCurrency(state.Goal)

	controls := make([]ui.Control, 0, len(state.AvailableRates))
	for _, opt := range state.AvailableRates {
		percent := strconv.FormatFloat(opt.Rate*100, 'f', -1, 64)
		controls = append(controls, ui.Control{
			Caption: r.tr.T("level1.deposit_option", strconv.Itoa(opt.Period), percent),
			Action:  model.Deposit(opt.Period, opt.Rate),
		})
	}
	r.bind.Element(ui.L1RateOptions).Controls = controls
	r.bind.Element(ui.L1AdvanceButton).Disabled = !state.IsGoalMet
}

func (r *Renderer) renderLevel2(state *model.GameState) {
	r.bind.Element(ui.L2Cash).Text = FormatCurrency(state.Cash)
	r.bind.Element(ui.L2TotalValue).Text = FormatCurrency(state.TotalValue)
	r.bind.Element(ui.L2Goal).Text = FormatCurrency(state.Goal)

	stock := state.Stock
	r.bind.Element(ui.L2StockInfo).Lines = []string{
		r.tr.T("level2.stock_header", stock.Name, stock.Ticker),
		r.tr.T("level2.stock_price", FormatCurrency(stock.Price)),
		r.tr.T("level2.stock_holding", strconv.Itoa(stock.Holding)),
		r.tr.T("level2.stock_date", state.Date),
	}

	labels := make([]string, len(state.PriceHistory))
	data := make([]float64, len(state.PriceHistory))
	for i, p := range state.PriceHistory {
		labels[i] = p.Date
		data[i] = p.Price.Float64()
	}
	r.chart.Set(labels, data)
	r.bind.Element(ui.L2AdvanceButton).Disabled = !state.IsGoalMet
}
