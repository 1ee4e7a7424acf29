package sim

import "testing"

func TestSelfPlaySeeds(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		if err := RunSelfPlay(seed, 20000); err != nil {
			t.Fatalf("self-play seed %d: %v", seed, err)
		}
	}
}

func FuzzSelfPlay(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(-7))
	f.Add(int64(1 << 40))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := RunSelfPlay(seed, 20000); err != nil {
			t.Fatal(err)
		}
	})
}
