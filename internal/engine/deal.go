package engine

import "math/rand"

// BuildDeck yields the full 52-card deck: every (color, value) pair once.
func BuildDeck(r Rules) []Card {
	deck := make([]Card, 0, r.Colors*r.ValuesPer)
	colors := []Color{ColorRed, ColorGreen, ColorBlue, ColorBrown}
	for _, c := range colors[:r.Colors] {
		for v := 0; v < r.ValuesPer; v++ {
			deck = append(deck, Card{Color: c, Value: v})
		}
	}
	return deck
}

func Shuffle(deck []Card, seed int64) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// DealRound reshuffles the full deck and deals a fresh hand to every seat.
// It mutates game state deterministically based on seed and round number,
// then opens the betting phase to the left of the dealer.
func DealRound(g *GameState) {
	deck := Shuffle(BuildDeck(g.Rules), g.Seed+int64(g.Round))
	players := g.Rules.Players
	handSize := g.Rules.HandSize

	if handSize*players != len(deck) {
		panic("invalid deal configuration: does not exhaust deck")
	}

	idx := 0
	for p := 0; p < players; p++ {
		g.Players[p].Hand = append([]Card(nil), deck[idx:idx+handSize]...)
		idx += handSize
	}
	g.HandsDealt = true
	g.Phase = PhaseBetting
	g.Bets = nil
	g.TurnSeat = (g.DealerSeat + 1) % players
}
