package engine

// TrickWinner returns the seat that takes the trick: the highest trump if any
// trump was played, otherwise the highest card of the led color. Cards are
// unique within a trick, so ties cannot occur.
func TrickWinner(trick []PlayedCard, trump *Color) int {
	if len(trick) == 0 {
		return -1
	}
	led := trick[0].Card.Color
	best := 0
	for i := 1; i < len(trick); i++ {
		c := trick[i].Card
		b := trick[best].Card

		if trump != nil {
			if c.Color == *trump && b.Color != *trump {
				best = i
				continue
			}
			if c.Color != *trump && b.Color == *trump {
				continue
			}
		}

		if c.Color == b.Color {
			if c.Value > b.Value {
				best = i
			}
			continue
		}

		if b.Color != led && c.Color == led {
			best = i
		}
	}
	return trick[best].Seat
}

// TrickPoints is the special-card delta of a trick: +BonusValue if the bonus
// zero is present, -PenaltyValue if the penalty zero is present. Both can
// co-occur. Order of the cards never matters.
func TrickPoints(r Rules, trick []PlayedCard) int {
	pts := 0
	for _, pc := range trick {
		switch pc.Card {
		case r.BonusCard():
			pts += r.BonusValue
		case r.PenaltyCard():
			pts -= r.PenaltyValue
		}
	}
	return pts
}

// IsBetHigher reports whether a outranks b. Bets form a total order over
// (amount, withoutTrump): a without-trump bet beats a trump bet of the same
// amount.
func IsBetHigher(a, b Bet) bool {
	if a.Skipped {
		return false
	}
	if b.Skipped {
		return true
	}
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	return a.WithoutTrump && !b.WithoutTrump
}

// HighestBet selects the winning bet. On an exact tie the dealer's bet wins
// (dealer privilege); among non-dealers ties cannot arise because every
// non-dealer bet must strictly exceed the standing one.
func HighestBet(bets []Bet, dealerSeat int) (Bet, bool) {
	var best Bet
	found := false
	for _, b := range bets {
		if b.Skipped {
			continue
		}
		if !found || IsBetHigher(b, best) {
			best = b
			found = true
			continue
		}
		if !IsBetHigher(best, b) && b.Seat == dealerSeat {
			best = b
		}
	}
	return best, found
}

// RoundScore derives both score deltas from the round outcome. A made
// contract pays the bet amount to the offense; a missed one sets the offense
// back by the same amount. The defense banks its own accumulated trick
// points either way. Without-trump contracts multiply the bet amount.
func RoundScore(r Rules, bet Bet, offensivePts, defensivePts int) (offDelta, defDelta int) {
	stake := bet.Amount
	if bet.WithoutTrump {
		stake *= r.WithoutTrumpMultiplier
	}
	if offensivePts >= bet.Amount {
		offDelta = stake
	} else {
		offDelta = -stake
	}
	defDelta = defensivePts
	return offDelta, defDelta
}

// hasColor reports whether any card of the color remains in hand.
func hasColor(hand []Card, color Color) bool {
	for _, c := range hand {
		if c.Color == color {
			return true
		}
	}
	return false
}

func removeCard(hand *[]Card, card Card) bool {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}

func containsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}
