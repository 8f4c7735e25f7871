// Package scheduler runs callbacks at fixed future instants, keyed so that
// pending work can be cancelled or replaced before it fires.
package scheduler

import (
	"sync"
	"time"
)

// Phase names the lifecycle transition a timer is armed for.
type Phase string

const (
	PhasePublish  Phase = "publish"
	PhaseConclude Phase = "conclude"
)

// Key addresses one pending timer. Using a structured key instead of a
// formatted string avoids collisions between phases of the same giveaway.
type Key struct {
	GiveawayID int64
	Phase      Phase
}

// Scheduler owns a set of one-shot timers. Callbacks run on their own
// goroutine; a fired or cancelled key can be scheduled again.
type Scheduler struct {
	mu     sync.Mutex
	timers map[Key]*time.Timer
}

func New() *Scheduler {
	return &Scheduler{
		timers: make(map[Key]*time.Timer),
	}
}

// Schedule arms fn to run at the given instant. An already pending timer
// with the same key is replaced. Instants in the past fire immediately.
func (s *Scheduler) Schedule(key Key, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[key]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(time.Until(at), func() {
		s.mu.Lock()
		if s.timers[key] != timer {
			// Replaced between firing and running: only the latest
			// schedule for the key may execute.
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = timer
}

// Cancel stops the pending timer for the key, if any, and reports whether
// one was pending. Cancelling an unknown key is a no-op.
func (s *Scheduler) Cancel(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, key)
	return true
}

// Pending reports whether a timer is armed for the key.
func (s *Scheduler) Pending(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// Stop cancels every pending timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}
