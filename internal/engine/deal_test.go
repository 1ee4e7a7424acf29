package engine

import (
	"reflect"
	"testing"
)

func newSeated(t *testing.T, seed int64) GameState {
	t.Helper()
	g := NewGame(ClassicPreset(), seed)
	names := []string{"ann", "bob", "cal", "dee"}
	for i := 0; i < 4; i++ {
		if err := g.Seat(i, names[i], names[i], false); err != nil {
			t.Fatalf("seat %d: %v", i, err)
		}
	}
	return g
}

func newStarted(t *testing.T, seed int64) GameState {
	t.Helper()
	g := newSeated(t, seed)
	if err := ApplyAction(&g, 0, Action{Type: ActionStartGame}); err != nil {
		t.Fatalf("start: %v", err)
	}
	return g
}

func TestDealRoundDeterministic(t *testing.T) {
	a := newStarted(t, 7)
	b := newStarted(t, 7)
	for i := range a.Players {
		if !reflect.DeepEqual(a.Players[i].Hand, b.Players[i].Hand) {
			t.Fatalf("seat %d hands differ for the same seed", i)
		}
	}

	c := newStarted(t, 8)
	same := true
	for i := range a.Players {
		if !reflect.DeepEqual(a.Players[i].Hand, c.Players[i].Hand) {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds dealt identical hands")
	}
}

func TestDealRoundExhaustsDeck(t *testing.T) {
	g := newStarted(t, 3)
	seen := map[Card]int{}
	total := 0
	for _, p := range g.Players {
		if len(p.Hand) != g.Rules.HandSize {
			t.Fatalf("seat %d got %d cards, want %d", p.Seat, len(p.Hand), g.Rules.HandSize)
		}
		for _, c := range p.Hand {
			seen[c]++
			total++
		}
	}
	if total != len(BuildDeck(g.Rules)) {
		t.Fatalf("dealt %d cards, want %d", total, len(BuildDeck(g.Rules)))
	}
	for c, n := range seen {
		if n != 1 {
			t.Fatalf("card %v dealt %d times", c, n)
		}
	}
}

func TestDealRoundOpensBetting(t *testing.T) {
	g := newStarted(t, 1)
	if g.Phase != PhaseBetting {
		t.Fatalf("phase = %v, want betting", g.Phase)
	}
	if g.TurnSeat != (g.DealerSeat+1)%4 {
		t.Fatalf("first bettor = %d, want left of dealer %d", g.TurnSeat, g.DealerSeat)
	}
	if !g.HandsDealt {
		t.Fatal("HandsDealt not set")
	}
}

func TestShuffleLeavesInputIntact(t *testing.T) {
	deck := BuildDeck(ClassicPreset())
	before := append([]Card(nil), deck...)
	Shuffle(deck, 42)
	if !reflect.DeepEqual(deck, before) {
		t.Fatal("Shuffle mutated its input")
	}
}

func TestBuildDeckUnique(t *testing.T) {
	deck := BuildDeck(ClassicPreset())
	if len(deck) != 52 {
		t.Fatalf("deck size = %d, want 52", len(deck))
	}
	seen := map[Card]bool{}
	for _, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card %v", c)
		}
		seen[c] = true
	}
}
