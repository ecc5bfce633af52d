package app

import (
	"context"
	"strings"
	"testing"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/navigate"
)

func newTestCommands(t *testing.T, first *model.GameState) (*Commands, *harness) {
	t.Helper()
	h := newHarness(t, first)
	return NewCommands(h.game, func() string { return "PAGE" }), h
}

func TestCommands_ResetNeedsConfirmation(t *testing.T) {
	c, h := newTestCommands(t, level1(false))
	ctx := context.Background()

	reply := c.HandleCommand(ctx, "/reset")
	if !strings.Contains(reply, "restart from level 1") {
		t.Errorf("prompt = %q", reply)
	}
	if !c.Pending() || len(h.backend.calls) != 1 {
		t.Fatal("reset ran before confirmation")
	}

	if reply := c.HandleCommand(ctx, "no"); reply != "Cancelled." {
		t.Errorf("cancel reply = %q", reply)
	}
	if len(h.backend.calls) != 1 {
		t.Error("cancelled reset reached the backend")
	}

	c.HandleCommand(ctx, "/reset")
	h.backend.push(level1(false), nil)
	if reply := c.HandleCommand(ctx, "yes"); reply != "PAGE" {
		t.Errorf("confirm reply = %q", reply)
	}
	if got := h.backend.last().Endpoint; got != api.EndpointReset {
		t.Errorf("confirmed call went to %s", got)
	}
}

func TestCommands_AdvanceDisabledSkipsPrompt(t *testing.T) {
	c, h := newTestCommands(t, level1(false))
	reply := c.HandleCommand(context.Background(), "/advance")
	if reply != h.game.Loc.T("alert.disabled") {
		t.Errorf("reply = %q", reply)
	}
	if c.Pending() {
		t.Error("disabled advance left a pending confirmation")
	}
}

func TestCommands_AdvanceToLevel3(t *testing.T) {
	c, h := newTestCommands(t, level2(true))
	ctx := context.Background()

	if reply := c.HandleCommand(ctx, "/advance@guardians_bot"); !strings.Contains(reply, "final level") {
		t.Errorf("prompt = %q", reply)
	}
	h.backend.push(&model.GameState{CurrentLevel: 3}, nil)
	if reply := c.HandleCommand(ctx, "y"); reply != "" {
		t.Errorf("reply after departure = %q", reply)
	}
	if h.router.Last() != navigate.Level3Route {
		t.Fatalf("route = %q", h.router.Last())
	}
	if reply := c.HandleCommand(ctx, "/state"); !strings.Contains(reply, navigate.Level3Route) {
		t.Errorf("reply after leaving = %q", reply)
	}
}

func TestCommands_BuyUsesArgument(t *testing.T) {
	c, h := newTestCommands(t, level2(false))
	h.backend.push(level2(false), nil)

	if reply := c.HandleCommand(context.Background(), "/buy 7"); reply != "PAGE" {
		t.Errorf("reply = %q", reply)
	}
	if got := h.backend.last().Body; got != model.Buy("7") {
		t.Errorf("body = %+v", got)
	}
}

func TestCommands_UnknownShowsHelp(t *testing.T) {
	c, h := newTestCommands(t, level1(false))
	if reply := c.HandleCommand(context.Background(), "hello"); reply != h.game.Loc.T("help.commands") {
		t.Errorf("reply = %q", reply)
	}
}
