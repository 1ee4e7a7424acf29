package server

import "joffre/internal/engine"

// GameView is the per-viewer projection of the state: the viewer sees their
// own hand and only the card counts of the other seats. Everything else at
// the table is public.

type PlayerView struct {
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Team      int    `json:"team"`
	HandCount int    `json:"handCount"`
	IsBot     bool   `json:"isBot"`
	Connected bool   `json:"connected"`
	Seated    bool   `json:"seated"`
}

type BetView struct {
	Seat         int  `json:"seat"`
	Amount       int  `json:"amount"`
	WithoutTrump bool `json:"withoutTrump"`
	Skipped      bool `json:"skipped"`
}

type PlayedCardView struct {
	Seat int     `json:"seat"`
	Card CardDTO `json:"card"`
}

type RoundResultView struct {
	Round          int    `json:"round"`
	BetSeat        int    `json:"betSeat"`
	BetAmount      int    `json:"betAmount"`
	WithoutTrump   bool   `json:"withoutTrump"`
	OffensiveTeam  int    `json:"offensiveTeam"`
	OffensivePts   int    `json:"offensivePts"`
	DefensivePts   int    `json:"defensivePts"`
	OffensiveDelta int    `json:"offensiveDelta"`
	DefensiveDelta int    `json:"defensiveDelta"`
	Scores         [2]int `json:"scores"`
}

type StatsView struct {
	BonusTaken   [4]int `json:"bonusTaken"`
	PenaltyTaken [4]int `json:"penaltyTaken"`
	TrumpPlayed  [4]int `json:"trumpPlayed"`
	FastestSeat  int    `json:"fastestSeat"`
}

type GameView struct {
	GameID       string            `json:"gameId"`
	Phase        string            `json:"phase"`
	Round        int               `json:"round"`
	DealerSeat   int               `json:"dealerSeat"`
	TurnSeat     int               `json:"turnSeat"`
	YourSeat     int               `json:"yourSeat"`
	Hand         []CardDTO         `json:"hand"`
	Players      []PlayerView      `json:"players"`
	Bets         []BetView         `json:"bets"`
	Trump        *string           `json:"trump,omitempty"`
	Trick        []PlayedCardView  `json:"trick"`
	TricksWon    [2]int            `json:"tricksWon"`
	TeamPoints   [2]int            `json:"teamPoints"`
	TeamScores   [2]int            `json:"teamScores"`
	Winner       int               `json:"winner,omitempty"`
	History      []RoundResultView `json:"history"`
	Stats        StatsView         `json:"stats"`
	LegalActions []ActionDTO       `json:"legalActions"`
}

func BuildGameView(g engine.GameState, viewer int, gameID string) GameView {
	v := GameView{
		GameID:     gameID,
		Phase:      g.Phase.String(),
		Round:      g.Round,
		DealerSeat: g.DealerSeat,
		TurnSeat:   g.TurnSeat,
		YourSeat:   viewer,
		Hand:       []CardDTO{},
		Trick:      []PlayedCardView{},
		TricksWon:  g.TricksWon,
		TeamPoints: g.TeamPoints,
		TeamScores: g.TeamScores,
		Winner:     int(g.Winner),
		Stats: StatsView{
			BonusTaken:   g.Stats.BonusTaken,
			PenaltyTaken: g.Stats.PenaltyTaken,
			TrumpPlayed:  g.Stats.TrumpPlayed,
			FastestSeat:  g.Stats.FastestSeat(),
		},
	}
	if viewer >= 0 && viewer < len(g.Players) {
		for _, c := range g.Players[viewer].Hand {
			v.Hand = append(v.Hand, cardToDTO(c))
		}
	}
	for _, p := range g.Players {
		v.Players = append(v.Players, PlayerView{
			Seat:      p.Seat,
			Name:      p.Name,
			Team:      int(p.Team),
			HandCount: len(p.Hand),
			IsBot:     p.IsBot,
			Connected: p.Connected,
			Seated:    p.Seated,
		})
	}
	for _, b := range g.Bets {
		v.Bets = append(v.Bets, BetView{Seat: b.Seat, Amount: b.Amount, WithoutTrump: b.WithoutTrump, Skipped: b.Skipped})
	}
	if g.Trump != nil {
		t := g.Trump.String()
		v.Trump = &t
	}
	for _, pc := range g.Trick {
		v.Trick = append(v.Trick, PlayedCardView{Seat: pc.Seat, Card: cardToDTO(pc.Card)})
	}
	for _, r := range g.History {
		v.History = append(v.History, RoundResultView{
			Round:          r.Round,
			BetSeat:        r.Bet.Seat,
			BetAmount:      r.Bet.Amount,
			WithoutTrump:   r.Bet.WithoutTrump,
			OffensiveTeam:  int(r.OffensiveTeam),
			OffensivePts:   r.OffensivePts,
			DefensivePts:   r.DefensivePts,
			OffensiveDelta: r.OffensiveDelta,
			DefensiveDelta: r.DefensiveDelta,
			Scores:         r.Scores,
		})
	}
	if cur, ok := engine.CurrentPlayer(g); ok && cur == viewer {
		for _, a := range engine.LegalActions(g, viewer) {
			v.LegalActions = append(v.LegalActions, actionToDTO(a))
		}
	}
	return v
}
