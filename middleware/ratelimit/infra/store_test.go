package infra

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rep-lookup/middleware/ratelimit/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestStore_ElevenHitsInsideWindow(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(10, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		dec, err := s.Hit(ctx, domain.Key("1.2.3.4"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dec.Allowed {
			t.Fatalf("expected hit %d allowed", i)
		}
		clock.Advance(time.Second)
	}

	dec, _ := s.Hit(ctx, domain.Key("1.2.3.4"))
	if dec.Allowed {
		t.Fatalf("expected 11th hit denied")
	}
	if dec.ResetSeconds() <= 0 {
		t.Fatalf("expected reset > 0, got %d", dec.ResetSeconds())
	}
	if dec.ResetSeconds() != 50 {
		t.Fatalf("expected reset=50s, got %d", dec.ResetSeconds())
	}
	if dec.Limit != 10 {
		t.Fatalf("expected limit=10, got %d", dec.Limit)
	}
}

func TestStore_TenthHitHasZeroRemaining(t *testing.T) {
	s := NewStore(10, time.Minute, WithClock(newFakeClock().Now))

	var dec domain.Decision
	for i := 0; i < 10; i++ {
		dec, _ = s.Hit(context.Background(), "k")
	}
	if !dec.Allowed || dec.Remaining != 0 {
		t.Fatalf("expected allowed with remaining=0, got %+v", dec)
	}
}

func TestStore_WindowResetsAfterDuration(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(2, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = s.Hit(ctx, "k")
	}

	clock.Advance(time.Minute)
	dec, _ := s.Hit(ctx, "k")
	if !dec.Allowed {
		t.Fatalf("expected allowed after window elapsed")
	}
	if dec.Remaining != 1 {
		t.Fatalf("expected count reset to 1 (remaining=1), got remaining=%d", dec.Remaining)
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	s := NewStore(1, time.Minute, WithClock(newFakeClock().Now))
	ctx := context.Background()

	if dec, _ := s.Hit(ctx, "a"); !dec.Allowed {
		t.Fatalf("expected first hit for a allowed")
	}
	if dec, _ := s.Hit(ctx, "b"); !dec.Allowed {
		t.Fatalf("expected first hit for b allowed")
	}
	if dec, _ := s.Hit(ctx, "a"); dec.Allowed {
		t.Fatalf("expected second hit for a denied")
	}
}

func TestStore_EvictsExpiredOnlyAboveThreshold(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(10, time.Minute, WithClock(clock.Now), WithMaxKeys(3))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = s.Hit(ctx, domain.Key(fmt.Sprintf("old-%d", i)))
	}
	clock.Advance(2 * time.Minute)

	// 4 chaves > limiar 3: o próximo hit varre as expiradas
	_, _ = s.Hit(ctx, "fresh")
	if got := s.Len(); got != 1 {
		t.Fatalf("expected only fresh key after sweep, got %d entries", got)
	}
}

func TestStore_NoEvictionBelowThreshold(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(10, time.Minute, WithClock(clock.Now), WithMaxKeys(1000))
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		_, _ = s.Hit(ctx, domain.Key(fmt.Sprintf("k-%d", i)))
	}
	clock.Advance(time.Hour)
	_, _ = s.Hit(ctx, "late")

	if got := s.Len(); got != 51 {
		t.Fatalf("expected no sweep below threshold, got %d entries", got)
	}
}

func TestStore_CleanupRemovesExpiredWindows(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(10, time.Minute, WithClock(clock.Now), WithCleanupEvery(0))
	ctx := context.Background()

	_, _ = s.Hit(ctx, "old")
	clock.Advance(45 * time.Second)
	_, _ = s.Hit(ctx, "recent")
	clock.Advance(30 * time.Second)

	if removed := s.Cleanup(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if got := s.Len(); got != 1 {
		t.Fatalf("expected 1 entry left, got %d", got)
	}
}

func TestStore_ConcurrentHitsDoNotLoseUpdates(t *testing.T) {
	s := NewStore(1000, time.Minute, WithClock(newFakeClock().Now))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Hit(context.Background(), "shared")
		}()
	}
	wg.Wait()

	dec, _ := s.Hit(context.Background(), "shared")
	if dec.Remaining != 1000-201 {
		t.Fatalf("expected remaining=%d, got %d", 1000-201, dec.Remaining)
	}
}
