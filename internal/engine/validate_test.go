package engine

import "testing"

func TestValidateGameStart(t *testing.T) {
	t.Run("needs four seated players", func(t *testing.T) {
		g := NewGame(ClassicPreset(), 1)
		_ = g.Seat(0, "a", "a", false)
		_ = g.Seat(1, "b", "b", false)
		if v := ValidateGameStart(g); v.OK {
			t.Fatal("start allowed with two players")
		}
	})

	t.Run("needs two against two", func(t *testing.T) {
		g := newSeated(t, 1)
		g.Players[1].Team = Team1
		g.Players[3].Team = Team1
		if v := ValidateGameStart(g); v.OK {
			t.Fatal("start allowed with a 4v0 split")
		}
	})

	t.Run("balanced table starts", func(t *testing.T) {
		g := newSeated(t, 1)
		if v := ValidateGameStart(g); !v.OK {
			t.Fatalf("start denied: %s", v.Msg)
		}
	})
}

func TestValidatePositionSwap(t *testing.T) {
	g := newSeated(t, 1)

	if v := ValidatePositionSwap(g, 0, 2); !v.OK {
		t.Fatalf("same-team swap denied: %s", v.Msg)
	}
	if v := ValidatePositionSwap(g, 0, 1); v.OK {
		t.Fatal("cross-team swap allowed")
	}
	if v := ValidatePositionSwap(g, 0, 0); v.OK {
		t.Fatal("self swap allowed")
	}

	started := newStarted(t, 1)
	if v := ValidatePositionSwap(started, 0, 2); v.OK {
		t.Fatal("swap allowed after start")
	}
}

func TestValidateBet(t *testing.T) {
	g := newStarted(t, 1) // dealer 0, first bettor 1

	t.Run("out of turn", func(t *testing.T) {
		if v := ValidateBet(g, 2, Bet{Seat: 2, Amount: 8}); v.OK {
			t.Fatal("bet out of turn allowed")
		}
	})

	t.Run("amount out of range", func(t *testing.T) {
		for _, amount := range []int{0, 6, 13, 40} {
			if v := ValidateBet(g, 1, Bet{Seat: 1, Amount: amount}); v.OK {
				t.Fatalf("bet of %d allowed", amount)
			}
		}
	})

	t.Run("non-dealer must exceed the standing bet", func(t *testing.T) {
		h := g.Clone()
		h.Bets = []Bet{{Seat: 1, Amount: 8}}
		h.TurnSeat = 2
		if v := ValidateBet(h, 2, Bet{Seat: 2, Amount: 8}); v.OK {
			t.Fatal("matching bet allowed for non-dealer")
		}
		if v := ValidateBet(h, 2, Bet{Seat: 2, Amount: 8, WithoutTrump: true}); !v.OK {
			t.Fatalf("without-trump raise denied: %s", v.Msg)
		}
		if v := ValidateBet(h, 2, Bet{Seat: 2, Amount: 9}); !v.OK {
			t.Fatalf("higher bet denied: %s", v.Msg)
		}
	})

	t.Run("dealer may match the standing bet", func(t *testing.T) {
		h := g.Clone()
		h.Bets = []Bet{{Seat: 1, Amount: 9}, {Seat: 2, Skipped: true}, {Seat: 3, Skipped: true}}
		h.TurnSeat = 0
		if v := ValidateBet(h, 0, Bet{Seat: 0, Amount: 9}); !v.OK {
			t.Fatalf("dealer match denied: %s", v.Msg)
		}
		if v := ValidateBet(h, 0, Bet{Seat: 0, Amount: 8}); v.OK {
			t.Fatal("dealer undercut allowed")
		}
		if v := ValidateBet(h, 0, Bet{Seat: 0, Skipped: true}); !v.OK {
			t.Fatalf("dealer skip denied with an active bet: %s", v.Msg)
		}
	})

	t.Run("dealer cannot skip when all others skipped", func(t *testing.T) {
		h := g.Clone()
		h.Bets = []Bet{{Seat: 1, Skipped: true}, {Seat: 2, Skipped: true}, {Seat: 3, Skipped: true}}
		h.TurnSeat = 0
		if v := ValidateBet(h, 0, Bet{Seat: 0, Skipped: true}); v.OK {
			t.Fatal("dealer skip allowed into an empty round")
		}
		if v := ValidateBet(h, 0, Bet{Seat: 0, Amount: 7}); !v.OK {
			t.Fatalf("forced dealer bet denied: %s", v.Msg)
		}
	})
}

func TestValidateCardPlay(t *testing.T) {
	g := NewGame(ClassicPreset(), 1)
	for i := 0; i < 4; i++ {
		_ = g.Seat(i, "p", "p", false)
	}
	g.Phase = PhasePlaying
	g.TurnSeat = 1
	g.Players[1].Hand = []Card{{ColorRed, 4}, {ColorGreen, 9}, {ColorBlue, 2}}
	g.Trick = []PlayedCard{{Card{ColorRed, 7}, 0}}

	if v := ValidateCardPlay(g, 1, Card{ColorGreen, 9}); v.OK {
		t.Fatal("off-color play allowed while holding the led color")
	} else if v.Reason != IllegalAction {
		t.Fatalf("follow-suit rejection kind = %v, want IllegalAction", v.Reason)
	}
	if v := ValidateCardPlay(g, 1, Card{ColorRed, 4}); !v.OK {
		t.Fatalf("follow denied: %s", v.Msg)
	}
	if v := ValidateCardPlay(g, 1, Card{ColorRed, 7}); v.OK {
		t.Fatal("play of a card not in hand allowed")
	}
	if v := ValidateCardPlay(g, 2, Card{ColorRed, 4}); v.OK {
		t.Fatal("play out of turn allowed")
	}
	if v := ValidateCardPlay(g, 1, Card{ColorRed, 99}); v.OK {
		t.Fatal("nonexistent card value allowed")
	}

	// Void in the led color: any card goes.
	g.Players[1].Hand = []Card{{ColorGreen, 9}, {ColorBlue, 2}}
	if v := ValidateCardPlay(g, 1, Card{ColorBlue, 2}); !v.OK {
		t.Fatalf("discard denied when void: %s", v.Msg)
	}

	// Leading a trick sets the color freely.
	g.Trick = nil
	if v := ValidateCardPlay(g, 1, Card{ColorGreen, 9}); !v.OK {
		t.Fatalf("lead denied: %s", v.Msg)
	}
}
