// Package console is the terminal frontend of the game client.
package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"LegacyGuardians/internal/app"
	"LegacyGuardians/internal/navigate"
)

// doneMsg reports that a game control finished its backend call.
type doneMsg struct{ err error }

type confirmation struct {
	prompt string
	run    func(ctx context.Context) error
}

// Model is the bubbletea model of the part-1 page.
type Model struct {
	ctx    context.Context
	game   *app.Game
	alerts *Alerts
	base   string

	width, height int
	pending       int
	modal         []string
	confirm       *confirmation
	target        string
}

// New creates the console model. Alerts must be the alerter the game's
// dispatcher was built with; base is the backend URL level-3 routes
// resolve against.
func New(ctx context.Context, g *app.Game, alerts *Alerts, base string) *Model {
	return &Model{ctx: ctx, game: g, alerts: alerts, base: base}
}

// Target is the level-3 URL the player left for, "" if they quit.
func (m *Model) Target() string { return m.target }

func (m *Model) Init() tea.Cmd {
	return m.run(m.game.Start)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.game.Chart.Resize(msg.Width-12, msg.Height/3)
		return m, nil

	case doneMsg:
		m.pending--
		m.modal = append(m.modal, m.alerts.Drain()...)
		if text := m.game.Explain(msg.err); text != "" {
			m.modal = append(m.modal, text)
		}
		if route := m.game.Departed(); route != "" {
			m.target = navigate.URL(m.base, route)
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if len(m.modal) > 0 {
		switch key {
		case "enter", "esc", " ":
			m.modal = m.modal[1:]
		}
		return m, nil
	}

	if m.confirm != nil {
		c := m.confirm
		switch key {
		case "y", "Y", "enter":
			m.confirm = nil
			return m, m.run(c.run)
		case "n", "N", "esc":
			m.confirm = nil
		}
		return m, nil
	}

	g := m.game
	switch key {
	case "q":
		return m, tea.Quit
	case "l":
		g.ToggleLocale()
		return m, nil
	case "r":
		m.confirm = &confirmation{prompt: app.ConfirmReset, run: g.Reset}
		return m, nil
	case "a":
		if err := g.CanAdvance(); err != nil {
			m.modal = append(m.modal, g.Explain(err))
			return m, nil
		}
		m.confirm = &confirmation{prompt: g.AdvancePrompt(), run: g.Advance}
		return m, nil
	}

	switch g.Level() {
	case 1:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '0')
			return m, m.run(func(ctx context.Context) error { return g.Deposit(ctx, n) })
		}
	case 2:
		switch {
		case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
			g.SetQuantity(g.Quantity() + key)
		case key == "backspace":
			if q := g.Quantity(); q != "" {
				g.SetQuantity(q[:len(q)-1])
			}
		case key == "b":
			return m, m.run(g.Buy)
		case key == "s":
			return m, m.run(g.Sell)
		case key == "n":
			return m, m.run(g.NextDay)
		}
	}
	return m, nil
}

// run performs a game control off the event loop.
func (m *Model) run(fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}
