package server

import (
	"fmt"

	"joffre/internal/engine"
)

// Wire representations. The engine types never cross the socket directly;
// everything is translated here so the engine can evolve without breaking
// connected clients.

type CardDTO struct {
	Color string `json:"color"`
	Value int    `json:"value"`
}

func cardToDTO(c engine.Card) CardDTO {
	return CardDTO{Color: c.Color.String(), Value: c.Value}
}

func parseColor(s string) (engine.Color, error) {
	switch s {
	case "red":
		return engine.ColorRed, nil
	case "green":
		return engine.ColorGreen, nil
	case "blue":
		return engine.ColorBlue, nil
	case "brown":
		return engine.ColorBrown, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (d CardDTO) toEngine() (engine.Card, error) {
	color, err := parseColor(d.Color)
	if err != nil {
		return engine.Card{}, err
	}
	return engine.Card{Color: color, Value: d.Value}, nil
}

// ActionDTO is the client-submitted action envelope. Exactly one shape is
// valid per type; extra fields are ignored.
type ActionDTO struct {
	Type         string   `json:"type"`
	Team         int      `json:"team,omitempty"`
	WithSeat     int      `json:"withSeat,omitempty"`
	Amount       int      `json:"amount,omitempty"`
	WithoutTrump bool     `json:"withoutTrump,omitempty"`
	Card         *CardDTO `json:"card,omitempty"`
}

func (d *ActionDTO) ToEngine() (engine.Action, error) {
	if d == nil {
		return engine.Action{}, fmt.Errorf("action missing")
	}
	switch d.Type {
	case "pick_team":
		if d.Team != 1 && d.Team != 2 {
			return engine.Action{}, fmt.Errorf("team must be 1 or 2")
		}
		return engine.Action{Type: engine.ActionPickTeam, Team: engine.Team(d.Team)}, nil
	case "swap_seats":
		return engine.Action{Type: engine.ActionSwapSeats, WithSeat: d.WithSeat}, nil
	case "start_game":
		return engine.Action{Type: engine.ActionStartGame}, nil
	case "bet":
		return engine.Action{Type: engine.ActionBet, Amount: d.Amount, WithoutTrump: d.WithoutTrump}, nil
	case "skip_bet":
		return engine.Action{Type: engine.ActionSkipBet}, nil
	case "play_card":
		if d.Card == nil {
			return engine.Action{}, fmt.Errorf("play_card requires a card")
		}
		card, err := d.Card.toEngine()
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionPlayCard, Card: &card}, nil
	case "rematch":
		return engine.Action{Type: engine.ActionRematch}, nil
	}
	return engine.Action{}, fmt.Errorf("unknown action type %q", d.Type)
}

func actionToDTO(a engine.Action) ActionDTO {
	d := ActionDTO{
		Team:         int(a.Team),
		WithSeat:     a.WithSeat,
		Amount:       a.Amount,
		WithoutTrump: a.WithoutTrump,
	}
	switch a.Type {
	case engine.ActionPickTeam:
		d.Type = "pick_team"
	case engine.ActionSwapSeats:
		d.Type = "swap_seats"
	case engine.ActionStartGame:
		d.Type = "start_game"
	case engine.ActionBet:
		d.Type = "bet"
	case engine.ActionSkipBet:
		d.Type = "skip_bet"
	case engine.ActionPlayCard:
		d.Type = "play_card"
		if a.Card != nil {
			c := cardToDTO(*a.Card)
			d.Card = &c
		}
	case engine.ActionRematch:
		d.Type = "rematch"
	}
	return d
}
