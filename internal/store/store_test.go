package store

import (
	"path/filepath"
	"testing"

	"joffre/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotUpsert(t *testing.T) {
	s := openTestStore(t)

	s.SaveSnapshot("g1", "betting", []byte(`{"round":1}`))
	s.SaveSnapshot("g1", "playing", []byte(`{"round":2}`))

	state, phase, err := s.LoadSnapshot("g1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if phase != "playing" || string(state) != `{"round":2}` {
		t.Fatalf("snapshot = %s %s, want the latest", phase, state)
	}

	if _, _, err := s.LoadSnapshot("missing"); err == nil {
		t.Fatal("load of unknown game succeeded")
	}
}

func TestRoundAndResultRecording(t *testing.T) {
	s := openTestStore(t)

	s.RecordRound("g1", engine.RoundResult{
		Round:          1,
		Bet:            engine.Bet{Seat: 2, Amount: 8},
		OffensiveTeam:  engine.Team1,
		OffensivePts:   11,
		DefensivePts:   18,
		OffensiveDelta: 8,
		DefensiveDelta: 18,
		Scores:         [2]int{8, 18},
	})

	g := engine.NewGame(engine.ClassicPreset(), 1)
	g.Winner = engine.Team2
	g.TeamScores = [2]int{30, 45}
	g.History = make([]engine.RoundResult, 4)
	s.RecordResult("g1", g)

	g2 := engine.NewGame(engine.ClassicPreset(), 2)
	g2.Winner = engine.Team1
	g2.TeamScores = [2]int{41, 20}
	g2.History = make([]engine.RoundResult, 6)
	s.RecordResult("g2", g2)

	sum, err := s.Summarize()
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Games != 2 || sum.Team1Wins != 1 || sum.Team2Wins != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.AvgRounds != 5 {
		t.Fatalf("avg rounds = %v, want 5", sum.AvgRounds)
	}
}
