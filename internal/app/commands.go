package app

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Commands drives a Game from text commands, one message at a time.
// Controls that confirm before acting hold the command until the next
// message answers yes or no.
type Commands struct {
	game *Game
	view func() string

	mu      sync.Mutex
	pending func(ctx context.Context) error
}

// NewCommands creates a command handler. view renders the page as the reply
// to every command that changes it.
func NewCommands(g *Game, view func() string) *Commands {
	return &Commands{game: g, view: view}
}

// Pending reports whether a command is waiting for confirmation.
func (c *Commands) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// HandleCommand runs one command and returns the reply, "" for none.
func (c *Commands) HandleCommand(ctx context.Context, text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if route := c.game.Departed(); route != "" {
		return c.game.Loc.T("nav.level3", route)
	}

	if c.pending != nil {
		run := c.pending
		c.pending = nil
		if !isYes(text) {
			return c.game.Loc.T("confirm.cancelled")
		}
		return c.result(run(ctx))
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	g := c.game
	switch cmd {
	case "/start", "/state":
		return c.view()
	case "/deposit":
		n, err := strconv.Atoi(arg)
		if err != nil {
			n = 0
		}
		return c.result(g.Deposit(ctx, n))
	case "/buy":
		g.SetQuantity(arg)
		return c.result(g.Buy(ctx))
	case "/sell":
		g.SetQuantity(arg)
		return c.result(g.Sell(ctx))
	case "/next":
		return c.result(g.NextDay(ctx))
	case "/advance":
		if err := g.CanAdvance(); err != nil {
			return g.Explain(err)
		}
		return c.confirm(g.AdvancePrompt(), g.Advance)
	case "/reset":
		return c.confirm(ConfirmReset, g.Reset)
	case "/lang":
		g.ToggleLocale()
		return c.view()
	default:
		return g.Loc.T("help.commands")
	}
}

func (c *Commands) confirm(prompt string, run func(ctx context.Context) error) string {
	c.pending = run
	return c.game.Loc.T(prompt) + "\n" + c.game.Loc.T("confirm.hint")
}

func (c *Commands) result(err error) string {
	if route := c.game.Departed(); route != "" {
		return ""
	}
	if err != nil {
		return c.game.Explain(err)
	}
	return c.view()
}

func isYes(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes", "ok", "是", "确定", "/yes":
		return true
	}
	return false
}
