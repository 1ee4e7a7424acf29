package bots

import (
	"math/rand"

	"joffre/internal/engine"
)

// Bot picks an action for a seat. Bots submit the same actions as humans
// and go through identical validation; there is no bot-specific engine path.
type Bot interface {
	ChooseAction(state engine.GameState, seat int) engine.Action
}

type EasyBot struct {
	RNG *rand.Rand
}

func NewEasy(seed int64) *EasyBot {
	return &EasyBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *EasyBot) ChooseAction(state engine.GameState, seat int) engine.Action {
	legal := engine.LegalActions(state, seat)
	if len(legal) == 0 {
		return engine.Action{Type: engine.ActionSkipBet}
	}
	return legal[b.RNG.Intn(len(legal))]
}

type NormalBot struct {
	RNG *rand.Rand
}

func NewNormal(seed int64) *NormalBot {
	return &NormalBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *NormalBot) ChooseAction(state engine.GameState, seat int) engine.Action {
	switch state.Phase {
	case engine.PhaseBetting:
		return betByHeuristic(state, seat)
	case engine.PhasePlaying:
		return playHeuristic(state, seat)
	default:
		legal := engine.LegalActions(state, seat)
		if len(legal) == 0 {
			return engine.Action{Type: engine.ActionSkipBet}
		}
		return legal[0]
	}
}

// betByHeuristic estimates winnable tricks from high cards and long colors,
// then bids the estimate if it beats the standing bet. It skips when it
// cannot, falling back to the lowest legal bet when skipping is illegal
// (dealer forced to bet).
func betByHeuristic(state engine.GameState, seat int) engine.Action {
	legal := engine.LegalActions(state, seat)
	if len(legal) == 0 {
		return engine.Action{Type: engine.ActionSkipBet}
	}

	hand := state.Players[seat].Hand
	colorCounts := map[engine.Color]int{}
	high := 0
	for _, c := range hand {
		colorCounts[c.Color]++
		if c.Value >= 10 {
			high++
		}
	}
	long := 0
	for _, n := range colorCounts {
		if n >= 5 {
			long += n - 4
		}
	}
	estimate := state.Rules.TrickValue * (high + long)

	var best *engine.Action
	for i := range legal {
		a := legal[i]
		if a.Type != engine.ActionBet || a.WithoutTrump {
			continue
		}
		if a.Amount <= estimate && (best == nil || a.Amount > best.Amount) {
			best = &legal[i]
		}
	}
	if best != nil {
		return *best
	}
	for _, a := range legal {
		if a.Type == engine.ActionSkipBet {
			return a
		}
	}
	// Dealer trap: no skip available, take the cheapest bet.
	return legal[0]
}

// playHeuristic wins the trick with the weakest winning card when possible,
// otherwise sheds the weakest card, preferring to dump the penalty zero.
func playHeuristic(state engine.GameState, seat int) engine.Action {
	legal := engine.LegalActions(state, seat)
	if len(legal) == 0 {
		return engine.Action{Type: engine.ActionSkipBet}
	}
	if len(state.Trick) == 0 {
		// Lead the strongest card to pull the trick home.
		best := legal[0]
		bestValue := -1
		for _, a := range legal {
			if a.Card != nil && a.Card.Value > bestValue {
				bestValue = a.Card.Value
				best = a
			}
		}
		return best
	}

	var winning *engine.Action
	winningValue := 1 << 30
	for i := range legal {
		a := legal[i]
		if a.Card == nil {
			continue
		}
		if winsIfPlayed(state, seat, *a.Card) && a.Card.Value < winningValue {
			winningValue = a.Card.Value
			winning = &legal[i]
		}
	}
	if winning != nil {
		return *winning
	}

	shed := legal[0]
	shedValue := 1 << 30
	for _, a := range legal {
		if a.Card == nil {
			continue
		}
		v := a.Card.Value
		if *a.Card == state.Rules.PenaltyCard() {
			v = -1 // losing the trick anyway, give the penalty away
		}
		if *a.Card == state.Rules.BonusCard() {
			v = 1 << 20 // never throw the bonus into a lost trick
		}
		if v < shedValue {
			shedValue = v
			shed = a
		}
	}
	return shed
}

func winsIfPlayed(state engine.GameState, seat int, card engine.Card) bool {
	trick := append([]engine.PlayedCard(nil), state.Trick...)
	trick = append(trick, engine.PlayedCard{Card: card, Seat: seat})
	return engine.TrickWinner(trick, state.Trump) == seat
}
