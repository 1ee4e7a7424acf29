package bots

import (
	"fmt"
	"testing"

	"joffre/internal/engine"
)

func startedGame(t *testing.T, seed int64) engine.GameState {
	t.Helper()
	g := engine.NewGame(engine.ClassicPreset(), seed)
	for i := 0; i < 4; i++ {
		if err := g.Seat(i, fmt.Sprintf("bot-%d", i), fmt.Sprintf("bot-%d", i), true); err != nil {
			t.Fatalf("seat %d: %v", i, err)
		}
	}
	if err := engine.ApplyAction(&g, 0, engine.Action{Type: engine.ActionStartGame}); err != nil {
		t.Fatalf("start: %v", err)
	}
	return g
}

// runBotGame plays a full game with the given bots and fails on the first
// action the engine rejects.
func runBotGame(t *testing.T, g engine.GameState, players [4]Bot) engine.GameState {
	t.Helper()
	for steps := 0; steps < 20000; steps++ {
		if g.Phase == engine.PhaseGameOver {
			return g
		}
		seat, ok := engine.CurrentPlayer(g)
		if !ok {
			t.Fatalf("no current player in phase %v", g.Phase)
		}
		action := players[seat].ChooseAction(g, seat)
		if err := engine.ApplyAction(&g, seat, action); err != nil {
			t.Fatalf("seat %d chose illegal action %+v: %v", seat, action, err)
		}
	}
	t.Fatal("bot game did not terminate")
	return g
}

func TestEasyBotPlaysLegally(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := startedGame(t, seed)
		players := [4]Bot{NewEasy(seed), NewEasy(seed + 100), NewEasy(seed + 200), NewEasy(seed + 300)}
		final := runBotGame(t, g, players)
		if final.Winner != engine.Team1 && final.Winner != engine.Team2 {
			t.Fatalf("seed %d: no winner", seed)
		}
	}
}

func TestNormalBotPlaysLegally(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := startedGame(t, seed)
		players := [4]Bot{NewNormal(seed), NewNormal(seed + 100), NewNormal(seed + 200), NewNormal(seed + 300)}
		final := runBotGame(t, g, players)
		if len(final.History) == 0 {
			t.Fatalf("seed %d: game over without history", seed)
		}
	}
}

func TestNormalBotHandlesDealerTrap(t *testing.T) {
	g := startedGame(t, 3)
	for _, seat := range []int{1, 2, 3} {
		if err := engine.ApplyAction(&g, seat, engine.Action{Type: engine.ActionSkipBet}); err != nil {
			t.Fatalf("skip seat %d: %v", seat, err)
		}
	}

	bot := NewNormal(1)
	action := bot.ChooseAction(g, 0)
	if action.Type != engine.ActionBet {
		t.Fatalf("trapped dealer chose %+v, want a bet", action)
	}
	if err := engine.ApplyAction(&g, 0, action); err != nil {
		t.Fatalf("forced bet rejected: %v", err)
	}
}

func TestNormalBotFollowsSuit(t *testing.T) {
	g := startedGame(t, 8)
	bot := NewNormal(1)
	for steps := 0; steps < 200; steps++ {
		if g.Phase != engine.PhasePlaying {
			if g.Phase == engine.PhaseGameOver {
				return
			}
			seat, _ := engine.CurrentPlayer(g)
			if err := engine.ApplyAction(&g, seat, bot.ChooseAction(g, seat)); err != nil {
				t.Fatalf("betting: %v", err)
			}
			continue
		}
		seat, _ := engine.CurrentPlayer(g)
		action := bot.ChooseAction(g, seat)
		if action.Card == nil {
			t.Fatalf("playing phase action without card: %+v", action)
		}
		if v := engine.ValidateCardPlay(g, seat, *action.Card); !v.OK {
			t.Fatalf("bot chose invalid card %v: %s", *action.Card, v.Msg)
		}
		if err := engine.ApplyAction(&g, seat, action); err != nil {
			t.Fatalf("play: %v", err)
		}
	}
}
