package session

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func TestLimiter_CooldownBetweenLookups(t *testing.T) {
	c := newClock()
	l := New(WithClock(c.Now))

	if dec := l.CheckAndRecord(); !dec.Allowed || dec.Remaining != 19 {
		t.Fatalf("expected first lookup allowed with 19 remaining, got %+v", dec)
	}

	c.Advance(1 * time.Second)
	dec := l.CheckAndRecord()
	if dec.Allowed {
		t.Fatalf("expected lookup inside cooldown to be denied")
	}
	if dec.Reason != ReasonCooldown {
		t.Fatalf("expected cooldown reason, got %q", dec.Reason)
	}
	if got := dec.WaitSeconds(); got != 2 {
		t.Fatalf("expected wait of 2s, got %d (%s)", got, dec.Wait)
	}
	if dec.Remaining != 19 {
		t.Fatalf("expected denied attempt not to consume the cap, got %d", dec.Remaining)
	}

	c.Advance(2 * time.Second)
	if dec := l.CheckAndRecord(); !dec.Allowed {
		t.Fatalf("expected lookup after cooldown to be allowed, got %+v", dec)
	}
	if got := l.Used(); got != 2 {
		t.Fatalf("expected 2 used, got %d", got)
	}
}

func TestLimiter_DeniedAttemptDoesNotRestartCooldown(t *testing.T) {
	c := newClock()
	l := New(WithClock(c.Now))

	l.CheckAndRecord()
	c.Advance(2 * time.Second)
	l.CheckAndRecord() // negada
	c.Advance(1 * time.Second)

	if dec := l.CheckAndRecord(); !dec.Allowed {
		t.Fatalf("expected cooldown measured from last accepted lookup, got %+v", dec)
	}
}

func TestLimiter_LifetimeCapNeverResets(t *testing.T) {
	c := newClock()
	l := New(WithClock(c.Now), WithMax(3))

	for i := 0; i < 3; i++ {
		if dec := l.CheckAndRecord(); !dec.Allowed {
			t.Fatalf("expected lookup %d allowed", i+1)
		}
		c.Advance(DefaultCooldown)
	}

	c.Advance(24 * time.Hour)
	dec := l.CheckAndRecord()
	if dec.Allowed {
		t.Fatalf("expected session cap to hold")
	}
	if dec.Reason != ReasonExhausted {
		t.Fatalf("expected exhausted reason, got %q", dec.Reason)
	}
	if dec.Remaining != 0 || dec.Wait != 0 {
		t.Fatalf("expected no remaining and no wait hint, got %+v", dec)
	}
}

func TestLimiter_DefaultCapIsTwenty(t *testing.T) {
	c := newClock()
	l := New(WithClock(c.Now))

	var last Decision
	for i := 0; i < 20; i++ {
		last = l.CheckAndRecord()
		if !last.Allowed {
			t.Fatalf("expected lookup %d allowed", i+1)
		}
		c.Advance(DefaultCooldown)
	}
	if last.Remaining != 0 {
		t.Fatalf("expected 20th lookup to leave 0 remaining, got %d", last.Remaining)
	}
	if dec := l.CheckAndRecord(); dec.Allowed {
		t.Fatalf("expected 21st lookup denied")
	}
}

func TestLimiter_ZeroCooldownOnlyCaps(t *testing.T) {
	l := New(WithClock(newClock().Now), WithCooldown(0), WithMax(2))

	if !l.CheckAndRecord().Allowed || !l.CheckAndRecord().Allowed {
		t.Fatalf("expected back-to-back lookups allowed without cooldown")
	}
	if l.CheckAndRecord().Allowed {
		t.Fatalf("expected cap to apply")
	}
}

func TestLimiter_SessionsHaveDistinctIDs(t *testing.T) {
	a, b := New(), New()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
}
