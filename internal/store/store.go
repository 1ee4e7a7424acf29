package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"joffre/internal/engine"
)

// Store persists game snapshots, round history and final results in sqlite.
// It is write-mostly: the live game never reads it, so every Record method
// swallows and logs failures instead of propagating them into play.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS game_snapshots (
	game_id  TEXT NOT NULL,
	phase    TEXT NOT NULL,
	state    BLOB NOT NULL,
	saved_at TIMESTAMP NOT NULL,
	PRIMARY KEY (game_id)
);
CREATE TABLE IF NOT EXISTS round_history (
	game_id         TEXT NOT NULL,
	round           INTEGER NOT NULL,
	bet_seat        INTEGER NOT NULL,
	bet_amount      INTEGER NOT NULL,
	without_trump   INTEGER NOT NULL,
	offensive_team  INTEGER NOT NULL,
	offensive_pts   INTEGER NOT NULL,
	defensive_pts   INTEGER NOT NULL,
	offensive_delta INTEGER NOT NULL,
	defensive_delta INTEGER NOT NULL,
	score1          INTEGER NOT NULL,
	score2          INTEGER NOT NULL,
	recorded_at     TIMESTAMP NOT NULL,
	PRIMARY KEY (game_id, round)
);
CREATE TABLE IF NOT EXISTS game_results (
	game_id     TEXT PRIMARY KEY,
	winner_team INTEGER NOT NULL,
	score1      INTEGER NOT NULL,
	score2      INTEGER NOT NULL,
	rounds      INTEGER NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot upserts the latest state blob for the game. Only the newest
// snapshot is kept; round_history holds the permanent record.
func (s *Store) SaveSnapshot(gameID, phase string, state []byte) {
	_, err := s.db.Exec(`
		INSERT INTO game_snapshots (game_id, phase, state, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			phase = excluded.phase,
			state = excluded.state,
			saved_at = excluded.saved_at`,
		gameID, phase, state, time.Now().UTC())
	if err != nil {
		log.Printf("store: save snapshot %s: %v", gameID, err)
	}
}

// LoadSnapshot returns the latest state blob, if any.
func (s *Store) LoadSnapshot(gameID string) ([]byte, string, error) {
	var state []byte
	var phase string
	err := s.db.QueryRow(
		`SELECT state, phase FROM game_snapshots WHERE game_id = ?`, gameID,
	).Scan(&state, &phase)
	if err != nil {
		return nil, "", err
	}
	return state, phase, nil
}

func (s *Store) RecordRound(gameID string, r engine.RoundResult) {
	wt := 0
	if r.Bet.WithoutTrump {
		wt = 1
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO round_history (
			game_id, round, bet_seat, bet_amount, without_trump,
			offensive_team, offensive_pts, defensive_pts,
			offensive_delta, defensive_delta, score1, score2, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, r.Round, r.Bet.Seat, r.Bet.Amount, wt,
		int(r.OffensiveTeam), r.OffensivePts, r.DefensivePts,
		r.OffensiveDelta, r.DefensiveDelta, r.Scores[0], r.Scores[1],
		time.Now().UTC())
	if err != nil {
		log.Printf("store: record round %s/%d: %v", gameID, r.Round, err)
	}
}

func (s *Store) RecordResult(gameID string, g engine.GameState) {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO game_results (
			game_id, winner_team, score1, score2, rounds, finished_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, int(g.Winner), g.TeamScores[0], g.TeamScores[1],
		len(g.History), time.Now().UTC())
	if err != nil {
		log.Printf("store: record result %s: %v", gameID, err)
	}
}

// Summary aggregates the results table for an ops endpoint.
type Summary struct {
	Games     int     `json:"games"`
	Team1Wins int     `json:"team1Wins"`
	Team2Wins int     `json:"team2Wins"`
	AvgRounds float64 `json:"avgRounds"`
}

func (s *Store) Summarize() (Summary, error) {
	var out Summary
	var avg sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN winner_team = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN winner_team = 2 THEN 1 ELSE 0 END), 0),
		       AVG(rounds)
		FROM game_results`,
	).Scan(&out.Games, &out.Team1Wins, &out.Team2Wins, &avg)
	if err != nil {
		return Summary{}, err
	}
	if avg.Valid {
		out.AvgRounds = avg.Float64
	}
	return out, nil
}
