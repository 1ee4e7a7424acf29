package server

import (
	"sync"
	"time"
)

// scheduler arms a single per-seat deadline for the session that owns it.
// One sweep goroutine checks a monotonic deadline instead of spawning an OS
// timer per seat, which keeps cancellation trivial: disarm under the lock
// and a late sweep tick sees nothing to fire.
//
// Seat lifecycle: waiting -> armed(deadline) -> acted (Cancel) | expired.
type scheduler struct {
	timeout time.Duration
	expire  func(seat int)

	mu       sync.Mutex
	armed    bool
	seat     int
	deadline time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

const sweepInterval = 100 * time.Millisecond

// newScheduler starts the sweep loop. A zero timeout disables the scheduler
// entirely; Arm becomes a no-op.
func newScheduler(timeout time.Duration, expire func(seat int)) *scheduler {
	s := &scheduler{
		timeout: timeout,
		expire:  expire,
		stop:    make(chan struct{}),
	}
	if timeout > 0 {
		go s.sweep()
	}
	return s
}

func (s *scheduler) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			fire := s.armed && !now.Before(s.deadline)
			seat := s.seat
			if fire {
				s.armed = false
			}
			s.mu.Unlock()
			if fire {
				s.expire(seat)
			}
		}
	}
}

// Arm (re)starts the deadline for the seat entering its turn.
func (s *scheduler) Arm(seat int) {
	if s.timeout <= 0 {
		return
	}
	s.mu.Lock()
	s.armed = true
	s.seat = seat
	s.deadline = time.Now().Add(s.timeout)
	s.mu.Unlock()
}

// Cancel disarms the pending deadline. Safe to call when nothing is armed.
func (s *scheduler) Cancel() {
	if s.timeout <= 0 {
		return
	}
	s.mu.Lock()
	s.armed = false
	s.mu.Unlock()
}

// Stop shuts the sweep loop down for good (game over or session eviction).
func (s *scheduler) Stop() {
	if s.timeout <= 0 {
		return
	}
	s.stopOnce.Do(func() { close(s.stop) })
}
