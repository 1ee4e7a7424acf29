package sim

import (
	"fmt"
	"math/rand"

	"joffre/internal/engine"
)

type ActionRecord struct {
	Round int
	Step  int
	Phase engine.Phase
	P     int
	A     engine.Action
}

// RunSelfPlay drives a full game with random-but-legal actions, checking
// the card-conservation and bookkeeping invariants after every transition.
func RunSelfPlay(seed int64, maxSteps int) error {
	rules := engine.ClassicPreset()
	state := engine.NewGame(rules, seed)
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < rules.Players; i++ {
		if err := state.Seat(i, fmt.Sprintf("p%d", i), fmt.Sprintf("player-%d", i), false); err != nil {
			return err
		}
	}
	if err := engine.ApplyAction(&state, 0, engine.Action{Type: engine.ActionStartGame}); err != nil {
		return err
	}

	records := []ActionRecord{}
	for step := 0; step < maxSteps; step++ {
		if state.Phase == engine.PhaseGameOver {
			return nil
		}
		player, ok := engine.CurrentPlayer(state)
		if !ok {
			return failure(seed, step, state.Phase, -1, records, "no current player")
		}
		legal := engine.LegalActions(state, player)
		if len(legal) == 0 {
			return failure(seed, step, state.Phase, player, records, "no legal actions")
		}
		action := legal[rng.Intn(len(legal))]
		prevScores := state.TeamScores
		prevRound := state.Round
		if err := engine.ApplyAction(&state, player, action); err != nil {
			return failure(seed, step, state.Phase, player, records, fmt.Sprintf("apply error: %v", err))
		}
		records = append(records, ActionRecord{Round: state.Round, Step: step, Phase: state.Phase, P: player, A: action})
		if err := checkInvariants(state); err != nil {
			return failure(seed, step, state.Phase, player, records, err.Error())
		}
		if state.Round != prevRound || state.Phase == engine.PhaseGameOver {
			if err := checkScoreDelta(state, prevScores); err != nil {
				return failure(seed, step, state.Phase, player, records, err.Error())
			}
		}
	}
	return failure(seed, maxSteps, state.Phase, -1, records, "game did not terminate")
}

// checkScoreDelta re-derives the last round's score movement from its
// recorded inputs and compares it to the cumulative totals.
func checkScoreDelta(state engine.GameState, prev [2]int) error {
	if len(state.History) == 0 {
		return fmt.Errorf("round ended without history record")
	}
	last := state.History[len(state.History)-1]
	offDelta, defDelta := engine.RoundScore(state.Rules, last.Bet, last.OffensivePts, last.DefensivePts)
	off := last.OffensiveTeam
	def := off.Other()
	if state.TeamScores[off-1] != prev[off-1]+offDelta {
		return fmt.Errorf("offensive score drift: %d != %d+%d", state.TeamScores[off-1], prev[off-1], offDelta)
	}
	if state.TeamScores[def-1] != prev[def-1]+defDelta {
		return fmt.Errorf("defensive score drift: %d != %d+%d", state.TeamScores[def-1], prev[def-1], defDelta)
	}
	return nil
}

func checkInvariants(state engine.GameState) error {
	if state.Phase == engine.PhaseGameOver {
		return nil
	}
	total, dup := countCards(state)
	full := len(engine.BuildDeck(state.Rules))
	inTricks := (state.TricksWon[0] + state.TricksWon[1]) * state.Rules.Players
	if total+inTricks != full {
		return fmt.Errorf("card count mismatch: %d live + %d in tricks != %d", total, inTricks, full)
	}
	if dup {
		return fmt.Errorf("duplicate card detected")
	}
	if len(state.Trick) >= state.Rules.Players {
		return fmt.Errorf("unresolved full trick: %d", len(state.Trick))
	}
	if state.Phase == engine.PhasePlaying {
		for _, p := range state.Players {
			if len(p.Hand) > state.Rules.HandSize {
				return fmt.Errorf("hand size too large: %d", len(p.Hand))
			}
		}
	}
	if state.Phase == engine.PhaseBetting {
		for _, p := range state.Players {
			if len(p.Hand) != state.Rules.HandSize {
				return fmt.Errorf("hand size after deal: %d", len(p.Hand))
			}
		}
	}
	return nil
}

func countCards(state engine.GameState) (int, bool) {
	seen := map[engine.Card]bool{}
	total := 0
	dup := false
	add := func(c engine.Card) {
		total++
		if seen[c] {
			dup = true
		}
		seen[c] = true
	}
	for _, p := range state.Players {
		for _, c := range p.Hand {
			add(c)
		}
	}
	for _, pc := range state.Trick {
		add(pc.Card)
	}
	return total, dup
}

func failure(seed int64, step int, phase engine.Phase, player int, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[r%d s%d p%d %v] %v\n", r.Round, r.Step, r.P, r.Phase, r.A)
	}
	return fmt.Errorf("seed=%d step=%d phase=%v player=%d reason=%s\nlast actions:\n%s",
		seed, step, phase, player, reason, log)
}
