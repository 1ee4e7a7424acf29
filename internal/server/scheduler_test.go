package server

import (
	"testing"
	"time"
)

func TestSchedulerFiresAfterDeadline(t *testing.T) {
	fired := make(chan int, 1)
	s := newScheduler(10*time.Millisecond, func(seat int) { fired <- seat })
	defer s.Stop()

	s.Arm(2)
	select {
	case seat := <-fired:
		if seat != 2 {
			t.Fatalf("fired for seat %d, want 2", seat)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deadline never fired")
	}
}

func TestSchedulerCancelPreventsFire(t *testing.T) {
	fired := make(chan int, 1)
	s := newScheduler(10*time.Millisecond, func(seat int) { fired <- seat })
	defer s.Stop()

	s.Arm(1)
	s.Cancel()
	select {
	case seat := <-fired:
		t.Fatalf("cancelled deadline fired for seat %d", seat)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSchedulerRearmReplacesSeat(t *testing.T) {
	fired := make(chan int, 4)
	s := newScheduler(50*time.Millisecond, func(seat int) { fired <- seat })
	defer s.Stop()

	s.Arm(0)
	s.Arm(3)
	select {
	case seat := <-fired:
		if seat != 3 {
			t.Fatalf("fired for seat %d, want the re-armed 3", seat)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deadline never fired")
	}
}

func TestSchedulerZeroTimeoutDisabled(t *testing.T) {
	fired := make(chan int, 1)
	s := newScheduler(0, func(seat int) { fired <- seat })
	defer s.Stop()

	s.Arm(1)
	select {
	case <-fired:
		t.Fatal("disabled scheduler fired")
	case <-time.After(250 * time.Millisecond):
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s := newScheduler(10*time.Millisecond, func(int) {})
	s.Stop()
	s.Stop()
}
