package limiter

import (
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestLimiter(max int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(max, window)
	l.now = clock.now
	return l, clock
}

func TestAllow_AdmitsUpToMax(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		clock.advance(time.Second)
		if !l.Allow("1.2.3.4") {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}

	// Call max+1 within the same window is rejected.
	if l.Allow("1.2.3.4") {
		t.Fatal("call 6 should be rejected")
	}
	// And so is every subsequent call inside the window.
	if l.Allow("1.2.3.4") {
		t.Fatal("call 7 should be rejected")
	}
}

func TestAllow_RecoversAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("call over the limit should be rejected")
	}

	// Once the window has elapsed, the identifier gets a fresh allowance.
	clock.advance(time.Minute + time.Second)
	if !l.Allow("1.2.3.4") {
		t.Fatal("call after the window elapsed should be allowed")
	}
}

func TestAllow_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first identifier should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("first identifier should now be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatal("second identifier should not share the first's budget")
	}
}

func TestAllow_RejectionDoesNotRecord(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	l.Allow("1.2.3.4")
	l.Allow("1.2.3.4")

	// Hammering while limited must not push the recovery point out.
	for i := 0; i < 10; i++ {
		clock.advance(time.Second)
		if l.Allow("1.2.3.4") {
			t.Fatal("hammering while limited should stay rejected")
		}
	}

	// 61s after the two admitted requests, both are outside the window.
	clock.advance(51 * time.Second)
	if !l.Allow("1.2.3.4") {
		t.Fatal("recovery should depend on admitted requests only")
	}
}

func TestCleanup_DropsStaleIdentifiers(t *testing.T) {
	l, clock := newTestLimiter(10, time.Minute)

	l.Allow("stale")
	clock.advance(30 * time.Second)
	l.Allow("fresh")

	// "stale" is past the window, "fresh" is still inside it.
	clock.advance(31 * time.Second)
	l.Cleanup()

	if got := l.tracked(); got != 1 {
		t.Fatalf("tracked identifiers = %d, want 1", got)
	}

	// "fresh" kept its in-window timestamp: with max=1 it would be limited.
	strict, strictClock := newTestLimiter(1, time.Minute)
	strict.Allow("fresh")
	strictClock.advance(30 * time.Second)
	strict.Cleanup()
	if strict.Allow("fresh") {
		t.Fatal("Cleanup must not remove timestamps still within the window")
	}
}

func TestCleanup_EmptyLimiter(t *testing.T) {
	l, _ := newTestLimiter(0, 0)
	l.Cleanup() // must not panic

	if l.max != DefaultMax {
		t.Errorf("max = %d, want default %d", l.max, DefaultMax)
	}
	if l.window != DefaultWindow {
		t.Errorf("window = %v, want default %v", l.window, DefaultWindow)
	}
}
