package domain

import (
	"testing"
	"time"
)

func TestWindow_NthAllowedWithZeroRemainingThenDenied(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var w Window
	var dec Decision

	for i := 1; i <= 10; i++ {
		w, dec = w.Hit(now, time.Minute, 10)
		if !dec.Allowed {
			t.Fatalf("expected hit %d allowed", i)
		}
		if dec.Remaining != 10-i {
			t.Fatalf("expected remaining=%d on hit %d, got %d", 10-i, i, dec.Remaining)
		}
	}

	w, dec = w.Hit(now.Add(30*time.Second), time.Minute, 10)
	if dec.Allowed {
		t.Fatalf("expected 11th hit to be denied")
	}
	if dec.Remaining != 0 {
		t.Fatalf("expected remaining=0, got %d", dec.Remaining)
	}
	if got := dec.ResetSeconds(); got != 30 {
		t.Fatalf("expected reset=30s, got %d", got)
	}
	if w.Count != 11 {
		t.Fatalf("expected count=11, got %d", w.Count)
	}
}

func TestWindow_ResetsAfterDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	w := Window{Start: start, Count: 42}

	// exatamente no limite da janela já conta como expirada
	w, dec := w.Hit(start.Add(time.Minute), time.Minute, 10)
	if !dec.Allowed {
		t.Fatalf("expected allowed after reset")
	}
	if w.Count != 1 {
		t.Fatalf("expected count reset to 1, got %d", w.Count)
	}
	if !w.Start.Equal(start.Add(time.Minute)) {
		t.Fatalf("expected window start reassigned to now, got %s", w.Start)
	}
	if dec.Remaining != 9 {
		t.Fatalf("expected remaining=9, got %d", dec.Remaining)
	}
}

func TestWindow_DoesNotResetInsideWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	w := Window{Start: start, Count: 3}

	w, _ = w.Hit(start.Add(59*time.Second), time.Minute, 10)
	if w.Count != 4 {
		t.Fatalf("expected count=4, got %d", w.Count)
	}
	if !w.Start.Equal(start) {
		t.Fatalf("expected window start unchanged")
	}
}

func TestDecision_ResetSecondsRoundsUp(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{1 * time.Millisecond, 1},
		{1500 * time.Millisecond, 2},
		{60 * time.Second, 60},
	}
	for _, c := range cases {
		if got := (Decision{ResetIn: c.in}).ResetSeconds(); got != c.want {
			t.Fatalf("ResetSeconds(%s): expected %d, got %d", c.in, c.want, got)
		}
	}
}
