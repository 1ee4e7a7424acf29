package server

import "joffre/internal/engine"

// Event is a broadcast notification riding alongside the fresh state view.
// Clients can animate off events or ignore them and re-render from state.
type Event struct {
	Type string       `json:"type"`
	Data EventPayload `json:"data"`
}

type EventPayload struct {
	Seat         int      `json:"seat,omitempty"`
	WithSeat     int      `json:"withSeat,omitempty"`
	Team         int      `json:"team,omitempty"`
	Amount       int      `json:"amount,omitempty"`
	WithoutTrump bool     `json:"withoutTrump,omitempty"`
	Card         *CardDTO `json:"card,omitempty"`
	Trump        string   `json:"trump,omitempty"`
	Winner       int      `json:"winner,omitempty"`
	Points       int      `json:"points,omitempty"`
	Round        int      `json:"round,omitempty"`
	Scores       [2]int   `json:"scores,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// buildEvents derives the notification list from one transition: the acting
// player's event first, then anything the engine resolved as a consequence
// (trump declared, trick settled, round scored, game over).
func buildEvents(prev, next engine.GameState, seat int, action engine.Action) []Event {
	events := []Event{}

	switch action.Type {
	case engine.ActionPickTeam:
		events = append(events, Event{Type: "team_picked", Data: EventPayload{Seat: seat, Team: int(action.Team)}})
	case engine.ActionSwapSeats:
		events = append(events, Event{Type: "seats_swapped", Data: EventPayload{Seat: seat, WithSeat: action.WithSeat}})
	case engine.ActionStartGame:
		events = append(events, Event{Type: "game_started", Data: EventPayload{Round: next.Round}})
	case engine.ActionBet:
		events = append(events, Event{Type: "bet_made", Data: EventPayload{Seat: seat, Amount: action.Amount, WithoutTrump: action.WithoutTrump}})
	case engine.ActionSkipBet:
		events = append(events, Event{Type: "bet_skipped", Data: EventPayload{Seat: seat}})
	case engine.ActionPlayCard:
		if action.Card != nil {
			c := cardToDTO(*action.Card)
			events = append(events, Event{Type: "card_played", Data: EventPayload{Seat: seat, Card: &c}})
		}
	case engine.ActionRematch:
		events = append(events, Event{Type: "rematch_started", Data: EventPayload{Seat: seat, Round: next.Round}})
	}

	if prev.Phase == engine.PhaseBetting && next.Phase == engine.PhasePlaying {
		if high, found := next.HighestBet(); found {
			events = append(events, Event{Type: "bet_won", Data: EventPayload{
				Seat: high.Seat, Amount: high.Amount, WithoutTrump: high.WithoutTrump,
			}})
		}
	}
	if prev.Trump == nil && next.Trump != nil {
		events = append(events, Event{Type: "trump_set", Data: EventPayload{Trump: next.Trump.String()}})
	}

	// A play completing the trick resolves it immediately. The winner is
	// recomputed from the trick itself: after the round's last trick the
	// successor state has already rolled the turn seat forward.
	if action.Type == engine.ActionPlayCard && action.Card != nil &&
		len(prev.Trick) == prev.Rules.Players-1 {
		trick := append([]engine.PlayedCard(nil), prev.Trick...)
		trick = append(trick, engine.PlayedCard{Card: *action.Card, Seat: seat})
		winner := engine.TrickWinner(trick, prev.Trump)
		events = append(events, Event{Type: "trick_won", Data: EventPayload{Seat: winner}})
	}

	for i := len(prev.History); i < len(next.History); i++ {
		r := next.History[i]
		events = append(events, Event{Type: "round_scored", Data: EventPayload{
			Team:   int(r.OffensiveTeam),
			Amount: r.Bet.Amount,
			Points: r.OffensiveDelta,
			Round:  r.Round,
			Scores: r.Scores,
		}})
	}

	if next.Phase == engine.PhaseGameOver && prev.Phase != engine.PhaseGameOver {
		events = append(events, Event{Type: "game_over", Data: EventPayload{
			Winner: int(next.Winner),
			Scores: next.TeamScores,
		}})
	}
	return events
}
