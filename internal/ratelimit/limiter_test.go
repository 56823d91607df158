package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterWindowBehavior(t *testing.T) {
	current := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	l := NewLimiter()
	l.now = func() time.Time { return current }

	limit := Limit{MaxRequests: 3, Window: time.Minute}

	// First three calls are allowed with decreasing remaining.
	for i := 0; i < 3; i++ {
		res := l.Check("user-1", limit)
		if !res.Allowed {
			t.Fatalf("call %d: Allowed = false, want true", i+1)
		}
		if want := 2 - i; res.Remaining != want {
			t.Errorf("call %d: Remaining = %d, want %d", i+1, res.Remaining, want)
		}
	}

	// Fourth call within the window is denied.
	res := l.Check("user-1", limit)
	if res.Allowed {
		t.Error("4th call: Allowed = true, want false")
	}
	if res.Remaining != 0 {
		t.Errorf("4th call: Remaining = %d, want 0", res.Remaining)
	}
	if res.ResetIn <= 0 || res.ResetIn > time.Minute {
		t.Errorf("4th call: ResetIn = %v, want within (0, 1m]", res.ResetIn)
	}

	// After the window elapses the next call is allowed again.
	current = current.Add(61 * time.Second)
	res = l.Check("user-1", limit)
	if !res.Allowed {
		t.Error("call after window: Allowed = false, want true")
	}
	if res.Remaining != 2 {
		t.Errorf("call after window: Remaining = %d, want 2", res.Remaining)
	}
}

func TestLimiterCountsDeniedChecks(t *testing.T) {
	current := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	l := NewLimiter()
	l.now = func() time.Time { return current }

	limit := Limit{MaxRequests: 1, Window: time.Minute}

	if res := l.Check("user-1", limit); !res.Allowed {
		t.Fatal("first call should be allowed")
	}

	// Every check counts, allowed or not; repeated denials stay denied
	// with zero remaining.
	for i := 0; i < 5; i++ {
		res := l.Check("user-1", limit)
		if res.Allowed {
			t.Fatalf("denied call %d: Allowed = true, want false", i+1)
		}
		if res.Remaining != 0 {
			t.Errorf("denied call %d: Remaining = %d, want 0", i+1, res.Remaining)
		}
	}

	// Counting denials must not extend the window.
	current = current.Add(61 * time.Second)
	if res := l.Check("user-1", limit); !res.Allowed {
		t.Error("call after window: Allowed = false, want true")
	}
}

func TestLimiterIsolatesIdentifiers(t *testing.T) {
	l := NewLimiter()
	limit := Limit{MaxRequests: 1, Window: time.Minute}

	if res := l.Check("a", limit); !res.Allowed {
		t.Error("first call for a should be allowed")
	}
	if res := l.Check("a", limit); res.Allowed {
		t.Error("second call for a should be denied")
	}
	if res := l.Check("b", limit); !res.Allowed {
		t.Error("first call for b should be allowed despite a's window")
	}
}
