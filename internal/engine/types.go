package engine

import "fmt"

type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorBrown
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorBrown:
		return "brown"
	default:
		return "?"
	}
}

// Card is an immutable value object compared by (Color, Value).
// Values run 0..12; the two zero cards are special (see Rules).
type Card struct {
	Color Color
	Value int
}

func (c Card) String() string {
	return fmt.Sprintf("%d%s", c.Value, c.Color.String()[:1])
}

type Phase int

const (
	PhaseTeamSelection Phase = iota
	PhaseBetting
	PhasePlaying
	PhaseScoring
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseTeamSelection:
		return "team_selection"
	case PhaseBetting:
		return "betting"
	case PhasePlaying:
		return "playing"
	case PhaseScoring:
		return "scoring"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

type Rules struct {
	Players      int
	Colors       int
	ValuesPer    int
	HandSize     int
	BetMin       int
	BetMax       int
	WinScore     int
	TrickValue   int
	BonusValue   int
	PenaltyValue int
	// Multiplier applied to the bet amount on a without-trump contract,
	// both on success and on failure.
	WithoutTrumpMultiplier int
}

func ClassicPreset() Rules {
	return Rules{
		Players:                4,
		Colors:                 4,
		ValuesPer:              13,
		HandSize:               13,
		BetMin:                 7,
		BetMax:                 12,
		WinScore:               41,
		TrickValue:             2,
		BonusValue:             5,
		PenaltyValue:           2,
		WithoutTrumpMultiplier: 2,
	}
}

// BonusCard awards Rules.BonusValue to the team winning the trick holding it.
func (r Rules) BonusCard() Card { return Card{Color: ColorRed, Value: 0} }

// PenaltyCard costs Rules.PenaltyValue to the team winning the trick holding it.
func (r Rules) PenaltyCard() Card { return Card{Color: ColorBrown, Value: 0} }

type Team int

const (
	Team1 Team = 1
	Team2 Team = 2
)

func (t Team) Other() Team {
	if t == Team1 {
		return Team2
	}
	return Team1
}

type Player struct {
	ID        string
	Name      string
	Team      Team
	Seat      int
	Hand      []Card
	IsBot     bool
	Connected bool
	Seated    bool
}

type Bet struct {
	Seat         int
	Amount       int
	WithoutTrump bool
	Skipped      bool
}

type PlayedCard struct {
	Card Card
	Seat int
}

// RoundResult is the history record appended after every scoring step.
type RoundResult struct {
	Round          int
	Bet            Bet
	OffensiveTeam  Team
	OffensivePts   int
	DefensivePts   int
	OffensiveDelta int
	DefensiveDelta int
	Scores         [2]int
}

type GameState struct {
	Rules      Rules
	Seed       int64
	Phase      Phase
	Players    [4]Player
	DealerSeat int
	TurnSeat   int
	Bets       []Bet
	Trump      *Color
	Trick      []PlayedCard
	// Per-team round accumulators, index Team-1.
	TricksWon  [2]int
	TeamPoints [2]int
	TeamScores [2]int
	Round      int
	Winner     Team
	History    []RoundResult
	Stats      RoundStats
	HandsDealt bool
	Corrupted  bool
}

func NewGame(r Rules, seed int64) GameState {
	g := GameState{
		Rules:    r,
		Seed:     seed,
		Phase:    PhaseTeamSelection,
		TurnSeat: 0,
	}
	for i := range g.Players {
		g.Players[i].Seat = i
		// Default split by seat parity; PickTeam may rearrange before start.
		if i%2 == 0 {
			g.Players[i].Team = Team1
		} else {
			g.Players[i].Team = Team2
		}
	}
	return g
}

// Seat places a player identity at the given seat. Legal only before start.
func (g *GameState) Seat(seat int, id, name string, isBot bool) error {
	if g.Phase != PhaseTeamSelection {
		return &Reject{Kind: IllegalAction, Msg: "seating only before game start"}
	}
	if seat < 0 || seat >= len(g.Players) {
		return &Reject{Kind: InvalidPayload, Msg: "seat out of range"}
	}
	if g.Players[seat].Seated {
		return &Reject{Kind: IllegalAction, Msg: "seat occupied"}
	}
	g.Players[seat].ID = id
	g.Players[seat].Name = name
	g.Players[seat].IsBot = isBot
	g.Players[seat].Connected = true
	g.Players[seat].Seated = true
	return nil
}

// SeatOf returns the seat currently bound to the player id, or -1.
func (g GameState) SeatOf(id string) int {
	for i, p := range g.Players {
		if p.Seated && p.ID == id {
			return i
		}
	}
	return -1
}

func (g GameState) TeamOf(seat int) Team {
	return g.Players[seat].Team
}

// LedColor is the color of the first card of the open trick.
func (g GameState) LedColor() (Color, bool) {
	if len(g.Trick) == 0 {
		return 0, false
	}
	return g.Trick[0].Card.Color, true
}

// HighestBet returns the winning bet so far, resolving exact ties in favor
// of the dealer.
func (g GameState) HighestBet() (Bet, bool) {
	return HighestBet(g.Bets, g.DealerSeat)
}

// Clone deep-copies the state so the pure transition path never aliases the
// caller's slices.
func (g GameState) Clone() GameState {
	out := g
	for i := range g.Players {
		out.Players[i].Hand = append([]Card(nil), g.Players[i].Hand...)
	}
	out.Bets = append([]Bet(nil), g.Bets...)
	out.Trick = append([]PlayedCard(nil), g.Trick...)
	out.History = append([]RoundResult(nil), g.History...)
	if g.Trump != nil {
		t := *g.Trump
		out.Trump = &t
	}
	return out
}

// resetRound clears round-scoped state; cumulative scores and history stay.
func (g *GameState) resetRound() {
	g.Bets = nil
	g.Trump = nil
	g.Trick = nil
	g.TricksWon = [2]int{}
	g.TeamPoints = [2]int{}
	g.HandsDealt = false
	g.Stats.Reset()
	for i := range g.Players {
		g.Players[i].Hand = nil
	}
}
