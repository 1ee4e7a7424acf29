package engine

// Verdict is the result of a pure legality check. Reason is only meaningful
// when OK is false.
type Verdict struct {
	OK     bool
	Reason ErrorKind
	Msg    string
}

func ok() Verdict {
	return Verdict{OK: true}
}

func deny(kind ErrorKind, msg string) Verdict {
	return Verdict{Reason: kind, Msg: msg}
}

func (v Verdict) err() error {
	if v.OK {
		return nil
	}
	return &Reject{Kind: v.Reason, Msg: v.Msg}
}

// ValidateTeamSelection checks a pre-start team pick. The resulting split
// must still be able to reach 2v2, which a pick of team 1 or 2 always can;
// balance itself is enforced by ValidateGameStart.
func ValidateTeamSelection(g GameState, seat int, team Team) Verdict {
	if g.Phase != PhaseTeamSelection {
		return deny(IllegalAction, "teams are fixed once the game starts")
	}
	if seat < 0 || seat >= len(g.Players) || !g.Players[seat].Seated {
		return deny(InvalidPayload, "no player at seat")
	}
	if team != Team1 && team != Team2 {
		return deny(InvalidPayload, "team must be 1 or 2")
	}
	return ok()
}

// ValidatePositionSwap allows swapping two seats of the same team before the
// game starts. Cross-team swaps are illegal.
func ValidatePositionSwap(g GameState, seatA, seatB int) Verdict {
	if g.Phase != PhaseTeamSelection {
		return deny(IllegalAction, "seats are fixed once the game starts")
	}
	if seatA < 0 || seatA >= len(g.Players) || seatB < 0 || seatB >= len(g.Players) {
		return deny(InvalidPayload, "seat out of range")
	}
	if seatA == seatB {
		return deny(InvalidPayload, "cannot swap a seat with itself")
	}
	if !g.Players[seatA].Seated || !g.Players[seatB].Seated {
		return deny(IllegalAction, "both seats must be occupied")
	}
	if g.Players[seatA].Team != g.Players[seatB].Team {
		return deny(IllegalAction, "swap only within the same team")
	}
	return ok()
}

// ValidateGameStart requires four seated players split exactly 2v2.
func ValidateGameStart(g GameState) Verdict {
	if g.Phase != PhaseTeamSelection {
		return deny(IllegalAction, "game already started")
	}
	team1 := 0
	for _, p := range g.Players {
		if !p.Seated {
			return deny(IllegalAction, "need four seated players")
		}
		if p.Team == Team1 {
			team1++
		}
	}
	if team1 != 2 {
		return deny(IllegalAction, "teams must be exactly two against two")
	}
	return ok()
}

// ValidateBet checks a betting-phase bid. Every non-dealer must strictly
// exceed the standing highest bet; the dealer may equal it (dealer
// privilege). The dealer cannot skip when every other seat skipped.
func ValidateBet(g GameState, seat int, bet Bet) Verdict {
	if g.Phase != PhaseBetting {
		return deny(IllegalAction, "not in betting phase")
	}
	if seat != g.TurnSeat {
		return deny(IllegalAction, "not your turn to bet")
	}
	if bet.Skipped {
		if seat == g.DealerSeat && !anyActiveBet(g.Bets) {
			return deny(IllegalAction, "dealer must bet when all others skipped")
		}
		return ok()
	}
	if bet.Amount < g.Rules.BetMin || bet.Amount > g.Rules.BetMax {
		return deny(InvalidPayload, "bet amount out of range")
	}
	if high, found := g.HighestBet(); found {
		if seat == g.DealerSeat {
			if IsBetHigher(high, bet) {
				return deny(IllegalAction, "dealer bet must at least match the highest bet")
			}
		} else if !IsBetHigher(bet, high) {
			return deny(IllegalAction, "bet must exceed the highest bet")
		}
	}
	return ok()
}

// ValidateCardPlay checks a playing-phase card. The first card of a trick
// sets the led color unconditionally; afterwards a player holding the led
// color must follow it.
func ValidateCardPlay(g GameState, seat int, card Card) Verdict {
	if g.Phase != PhasePlaying {
		return deny(IllegalAction, "not in playing phase")
	}
	if seat != g.TurnSeat {
		return deny(IllegalAction, "not your turn to play")
	}
	if card.Value < 0 || card.Value >= g.Rules.ValuesPer {
		return deny(InvalidPayload, "no such card")
	}
	hand := g.Players[seat].Hand
	if !containsCard(hand, card) {
		return deny(IllegalAction, "card not in hand")
	}
	if led, open := g.LedColor(); open {
		if card.Color != led && hasColor(hand, led) {
			return deny(IllegalAction, "must follow the led color")
		}
	}
	return ok()
}

func anyActiveBet(bets []Bet) bool {
	for _, b := range bets {
		if !b.Skipped {
			return true
		}
	}
	return false
}
