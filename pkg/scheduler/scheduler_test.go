package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, deadline time.Duration, cond func() bool) {
	t.Helper()
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSchedule_FiresOnce(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	key := Key{GiveawayID: 1, Phase: PhasePublish}
	var fired int32
	s.Schedule(key, time.Now().Add(20*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})

	if !s.Pending(key) {
		t.Fatal("expected timer to be pending before firing")
	}
	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&fired) == 1 })
	waitFor(t, time.Second, func() bool { return !s.Pending(key) })

	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Fatalf("timer fired %d times, want 1", got)
	}
}

func TestSchedule_PastInstantFiresImmediately(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	var fired int32
	s.Schedule(Key{GiveawayID: 2, Phase: PhasePublish}, time.Now().Add(-time.Hour), func() {
		atomic.AddInt32(&fired, 1)
	})

	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&fired) == 1 })
}

func TestSchedule_ReplacesPendingTimer(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	key := Key{GiveawayID: 3, Phase: PhaseConclude}
	var stale, fresh int32
	s.Schedule(key, time.Now().Add(30*time.Millisecond), func() {
		atomic.AddInt32(&stale, 1)
	})
	s.Schedule(key, time.Now().Add(60*time.Millisecond), func() {
		atomic.AddInt32(&fresh, 1)
	})

	waitFor(t, time.Second, func() bool { return atomic.LoadInt32(&fresh) == 1 })
	if atomic.LoadInt32(&stale) != 0 {
		t.Fatal("replaced timer fired anyway")
	}
}

func TestCancel_PreventsFiring(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	key := Key{GiveawayID: 4, Phase: PhasePublish}
	var fired int32
	s.Schedule(key, time.Now().Add(40*time.Millisecond), func() {
		atomic.AddInt32(&fired, 1)
	})

	if !s.Cancel(key) {
		t.Fatal("Cancel reported no pending timer")
	}
	if s.Pending(key) {
		t.Fatal("key still pending after Cancel")
	}

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatal("cancelled timer fired")
	}
}

func TestCancel_UnknownKey(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	if s.Cancel(Key{GiveawayID: 99, Phase: PhaseConclude}) {
		t.Fatal("Cancel reported a pending timer for an unknown key")
	}
}

func TestKeys_PhasesDoNotCollide(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	publish := Key{GiveawayID: 5, Phase: PhasePublish}
	conclude := Key{GiveawayID: 5, Phase: PhaseConclude}
	s.Schedule(publish, time.Now().Add(time.Hour), func() {})
	s.Schedule(conclude, time.Now().Add(time.Hour), func() {})

	if !s.Cancel(publish) {
		t.Fatal("publish timer missing")
	}
	if !s.Pending(conclude) {
		t.Fatal("cancelling the publish phase disarmed the conclude phase")
	}
}

func TestSchedule_ReplacementSurvivesStaleFire(t *testing.T) {
	t.Parallel()
	s := New()
	defer s.Stop()

	key := Key{GiveawayID: 8, Phase: PhasePublish}
	var stale, fresh int32
	s.Schedule(key, time.Now().Add(time.Hour), func() {
		atomic.AddInt32(&stale, 1)
	})
	s.mu.Lock()
	old := s.timers[key]
	s.mu.Unlock()

	s.Schedule(key, time.Now().Add(time.Hour), func() {
		atomic.AddInt32(&fresh, 1)
	})

	// Force the replaced timer to run anyway, as if it had fired just as
	// Schedule was replacing it. Its callback must neither execute nor
	// disarm the replacement.
	old.Reset(0)
	time.Sleep(50 * time.Millisecond)

	if atomic.LoadInt32(&stale) != 0 {
		t.Fatal("replaced callback executed")
	}
	if atomic.LoadInt32(&fresh) != 0 {
		t.Fatal("replacement fired early")
	}
	if !s.Pending(key) {
		t.Fatal("stale fire disarmed the replacement")
	}
}

func TestStop_DisarmsEverything(t *testing.T) {
	t.Parallel()
	s := New()

	keys := []Key{
		{GiveawayID: 6, Phase: PhasePublish},
		{GiveawayID: 6, Phase: PhaseConclude},
		{GiveawayID: 7, Phase: PhasePublish},
	}
	var fired int32
	for _, key := range keys {
		s.Schedule(key, time.Now().Add(30*time.Millisecond), func() {
			atomic.AddInt32(&fired, 1)
		})
	}

	s.Stop()
	for _, key := range keys {
		if s.Pending(key) {
			t.Fatalf("key %+v still pending after Stop", key)
		}
	}

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatal("timer fired after Stop")
	}
}
