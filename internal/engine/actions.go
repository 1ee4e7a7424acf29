package engine

type ActionType int

const (
	ActionPickTeam ActionType = iota
	ActionSwapSeats
	ActionStartGame
	ActionBet
	ActionSkipBet
	ActionPlayCard
	ActionRematch
)

type Action struct {
	Type         ActionType
	Team         Team
	WithSeat     int
	Amount       int
	WithoutTrump bool
	Card         *Card
}

// CurrentPlayer returns the seat expected to act in the current phase.
// Team selection has no turn order; any seated player may act.
func CurrentPlayer(g GameState) (int, bool) {
	switch g.Phase {
	case PhaseBetting, PhasePlaying:
		return g.TurnSeat, true
	default:
		return -1, false
	}
}

// LegalActions enumerates every action the seat could legally take right
// now. Ordering is deterministic: skip first, then bets by (amount, trump
// before without-trump), then cards in hand order.
func LegalActions(g GameState, seat int) []Action {
	switch g.Phase {
	case PhaseBetting:
		if seat != g.TurnSeat {
			return nil
		}
		out := []Action{}
		if ValidateBet(g, seat, Bet{Seat: seat, Skipped: true}).OK {
			out = append(out, Action{Type: ActionSkipBet})
		}
		for amount := g.Rules.BetMin; amount <= g.Rules.BetMax; amount++ {
			for _, wt := range []bool{false, true} {
				b := Bet{Seat: seat, Amount: amount, WithoutTrump: wt}
				if ValidateBet(g, seat, b).OK {
					out = append(out, Action{Type: ActionBet, Amount: amount, WithoutTrump: wt})
				}
			}
		}
		return out
	case PhasePlaying:
		if seat != g.TurnSeat {
			return nil
		}
		out := []Action{}
		for i := range g.Players[seat].Hand {
			c := g.Players[seat].Hand[i]
			if ValidateCardPlay(g, seat, c).OK {
				out = append(out, Action{Type: ActionPlayCard, Card: &c})
			}
		}
		return out
	default:
		return nil
	}
}

// Transition is the single pure transition table: it never mutates its
// input and returns either the successor state or a structured rejection.
// Both the immutable operations and the mutable hot path go through here.
func Transition(g GameState, seat int, a Action) (GameState, error) {
	if g.Corrupted {
		return g, &Reject{Kind: InvariantViolation, Msg: "session corrupted"}
	}
	next := g.Clone()
	var err error
	switch a.Type {
	case ActionPickTeam:
		err = applyPickTeam(&next, seat, a.Team)
	case ActionSwapSeats:
		err = applySwapSeats(&next, seat, a.WithSeat)
	case ActionStartGame:
		err = applyStart(&next, seat)
	case ActionBet:
		err = applyBet(&next, Bet{Seat: seat, Amount: a.Amount, WithoutTrump: a.WithoutTrump})
	case ActionSkipBet:
		err = applyBet(&next, Bet{Seat: seat, Skipped: true})
	case ActionPlayCard:
		if a.Card == nil {
			err = invalid("card required")
		} else {
			err = applyCardPlay(&next, seat, *a.Card)
		}
	case ActionRematch:
		err = applyRematch(&next, seat)
	default:
		err = invalid("unknown action type")
	}
	if err != nil {
		return g, err
	}
	if err := verify(&next); err != nil {
		next.Corrupted = true
		return next, err
	}
	return next, nil
}

// ApplyAction is the in-place hot path. It applies the pure transition and
// writes the result back through the shared pointer, so the two paths cannot
// drift. On an invariant violation the corrupted flag is persisted.
func ApplyAction(g *GameState, seat int, a Action) error {
	next, err := Transition(*g, seat, a)
	if err != nil {
		if KindOf(err) == InvariantViolation {
			*g = next
		}
		return err
	}
	*g = next
	return nil
}

// Immutable entry points for tests, replay and undo. Each returns a fresh
// state and leaves its input untouched.

func PickTeam(g GameState, seat int, team Team) (GameState, error) {
	return Transition(g, seat, Action{Type: ActionPickTeam, Team: team})
}

func SwapSeats(g GameState, seatA, seatB int) (GameState, error) {
	return Transition(g, seatA, Action{Type: ActionSwapSeats, WithSeat: seatB})
}

func StartGame(g GameState, seat int) (GameState, error) {
	return Transition(g, seat, Action{Type: ActionStartGame})
}

func PlaceBet(g GameState, seat, amount int, withoutTrump bool) (GameState, error) {
	return Transition(g, seat, Action{Type: ActionBet, Amount: amount, WithoutTrump: withoutTrump})
}

func SkipBet(g GameState, seat int) (GameState, error) {
	return Transition(g, seat, Action{Type: ActionSkipBet})
}

func PlayCard(g GameState, seat int, card Card) (GameState, error) {
	return Transition(g, seat, Action{Type: ActionPlayCard, Card: &card})
}

func Rematch(g GameState, seat int) (GameState, error) {
	return Transition(g, seat, Action{Type: ActionRematch})
}

func applyPickTeam(g *GameState, seat int, team Team) error {
	if v := ValidateTeamSelection(*g, seat, team); !v.OK {
		return v.err()
	}
	g.Players[seat].Team = team
	return nil
}

func applySwapSeats(g *GameState, seatA, seatB int) error {
	if v := ValidatePositionSwap(*g, seatA, seatB); !v.OK {
		return v.err()
	}
	g.Players[seatA], g.Players[seatB] = g.Players[seatB], g.Players[seatA]
	g.Players[seatA].Seat = seatA
	g.Players[seatB].Seat = seatB
	return nil
}

func applyStart(g *GameState, seat int) error {
	if seat < 0 || seat >= len(g.Players) || !g.Players[seat].Seated {
		return illegal("only seated players can start the game")
	}
	if v := ValidateGameStart(*g); !v.OK {
		return v.err()
	}
	g.DealerSeat = 0
	g.Round = 1
	g.resetRound()
	DealRound(g)
	return nil
}

func applyBet(g *GameState, bet Bet) error {
	if v := ValidateBet(*g, bet.Seat, bet); !v.OK {
		return v.err()
	}
	g.Bets = append(g.Bets, bet)

	if len(g.Bets) == g.Rules.Players {
		high, found := g.HighestBet()
		if !found {
			// Unreachable: the dealer bets last and cannot skip into an
			// empty round.
			return &Reject{Kind: InvariantViolation, Msg: "betting closed without a bet"}
		}
		g.Phase = PhasePlaying
		g.TurnSeat = high.Seat
		return nil
	}
	g.TurnSeat = (bet.Seat + 1) % g.Rules.Players
	return nil
}

func applyCardPlay(g *GameState, seat int, card Card) error {
	if v := ValidateCardPlay(*g, seat, card); !v.OK {
		return v.err()
	}

	// The bet winner's first card of the round declares trump, unless the
	// winning bet was without trump.
	if g.Trump == nil && len(g.Trick) == 0 && g.TricksWon[0]+g.TricksWon[1] == 0 {
		if high, found := g.HighestBet(); found && !high.WithoutTrump {
			trump := card.Color
			g.Trump = &trump
		}
	}

	if !removeCard(&g.Players[seat].Hand, card) {
		return illegal("card not in hand")
	}
	g.Trick = append(g.Trick, PlayedCard{Card: card, Seat: seat})

	if len(g.Trick) == g.Rules.Players {
		resolveTrick(g)
		return nil
	}
	g.TurnSeat = (seat + 1) % g.Rules.Players
	return nil
}

// resolveTrick settles a complete trick immediately: winner, team points,
// stats, and next leader. Any presentation delay belongs to the transport.
func resolveTrick(g *GameState) {
	winner := TrickWinner(g.Trick, g.Trump)
	team := g.TeamOf(winner)
	g.TricksWon[team-1]++
	g.TeamPoints[team-1] += g.Rules.TrickValue + TrickPoints(g.Rules, g.Trick)
	g.Stats.recordTrick(g.Rules, g.Trick, winner, g.Trump)
	g.Trick = nil
	g.TurnSeat = winner

	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return
		}
	}
	applyRoundScoring(g)
}

// applyRoundScoring settles the round, checks the win threshold and either
// ends the game or rolls into the next round.
func applyRoundScoring(g *GameState) {
	g.Phase = PhaseScoring

	bet, _ := g.HighestBet()
	off := g.TeamOf(bet.Seat)
	def := off.Other()
	offPts := g.TeamPoints[off-1]
	defPts := g.TeamPoints[def-1]
	offDelta, defDelta := RoundScore(g.Rules, bet, offPts, defPts)
	g.TeamScores[off-1] += offDelta
	g.TeamScores[def-1] += defDelta

	g.History = append(g.History, RoundResult{
		Round:          g.Round,
		Bet:            bet,
		OffensiveTeam:  off,
		OffensivePts:   offPts,
		DefensivePts:   defPts,
		OffensiveDelta: offDelta,
		DefensiveDelta: defDelta,
		Scores:         g.TeamScores,
	})

	if g.TeamScores[0] >= g.Rules.WinScore || g.TeamScores[1] >= g.Rules.WinScore {
		g.Phase = PhaseGameOver
		if g.TeamScores[0] > g.TeamScores[1] {
			g.Winner = Team1
		} else if g.TeamScores[1] > g.TeamScores[0] {
			g.Winner = Team2
		} else {
			// Both crossed together; the contract side earned the exit.
			g.Winner = off
		}
		return
	}

	initializeRound(g)
}

// initializeRound rotates the dealer, resets round state and redeals.
func initializeRound(g *GameState) {
	g.DealerSeat = (g.DealerSeat + 1) % g.Rules.Players
	g.Round++
	g.resetRound()
	DealRound(g)
}

func applyRematch(g *GameState, seat int) error {
	if g.Phase != PhaseGameOver {
		return illegal("rematch only after game over")
	}
	if seat < 0 || seat >= len(g.Players) || !g.Players[seat].Seated {
		return illegal("only seated players can request a rematch")
	}
	// Advance the seed past the rounds already dealt; a rematch must not
	// repeat the previous game's hands.
	g.Seed += int64(g.Round)
	g.TeamScores = [2]int{}
	g.History = nil
	g.Winner = 0
	g.DealerSeat = 0
	g.Round = 1
	g.resetRound()
	DealRound(g)
	return nil
}

// verify runs the cheap always-on invariant checks after every transition.
// A failure here is an engine bug, not a player error.
func verify(g *GameState) error {
	if len(g.Trick) > g.Rules.Players {
		return &Reject{Kind: InvariantViolation, Msg: "trick overflow"}
	}
	if len(g.Bets) > g.Rules.Players {
		return &Reject{Kind: InvariantViolation, Msg: "too many bets"}
	}
	switch g.Phase {
	case PhaseBetting, PhasePlaying:
		if g.TurnSeat < 0 || g.TurnSeat >= len(g.Players) || !g.Players[g.TurnSeat].Seated {
			return &Reject{Kind: InvariantViolation, Msg: "turn seat not seated"}
		}
	}
	return nil
}
