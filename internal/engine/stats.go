package engine

import "time"

// RoundStats carries derived, non-authoritative per-round aggregates.
// Removing it changes nothing about scoring, only post-round summaries.
// It is fully reset at the start of every round.
type RoundStats struct {
	BonusTaken   [4]int
	PenaltyTaken [4]int
	TrumpPlayed  [4]int
	ActTime      [4]time.Duration
	Actions      [4]int
}

func (s *RoundStats) Reset() {
	*s = RoundStats{}
}

// RecordAct accumulates time-to-act as reported by the scheduler.
func (s *RoundStats) RecordAct(seat int, elapsed time.Duration) {
	if seat < 0 || seat >= len(s.ActTime) {
		return
	}
	s.ActTime[seat] += elapsed
	s.Actions[seat]++
}

// FastestSeat returns the seat with the lowest average time-to-act, or -1
// when nobody acted yet.
func (s RoundStats) FastestSeat() int {
	best := -1
	var bestAvg time.Duration
	for seat := range s.ActTime {
		if s.Actions[seat] == 0 {
			continue
		}
		avg := s.ActTime[seat] / time.Duration(s.Actions[seat])
		if best == -1 || avg < bestAvg {
			best = seat
			bestAvg = avg
		}
	}
	return best
}

// recordTrick folds a resolved trick into the stats: special-card captures
// credit the winner, trump usage credits whoever played trump.
func (s *RoundStats) recordTrick(r Rules, trick []PlayedCard, winner int, trump *Color) {
	for _, pc := range trick {
		if trump != nil && pc.Card.Color == *trump {
			s.TrumpPlayed[pc.Seat]++
		}
		switch pc.Card {
		case r.BonusCard():
			s.BonusTaken[winner]++
		case r.PenaltyCard():
			s.PenaltyTaken[winner]++
		}
	}
}
