package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"rep-lookup/middleware/ratelimit/domain"
)

type fakeStore struct {
	dec  domain.Decision
	err  error
	hits []domain.Key
}

func (s *fakeStore) Hit(_ context.Context, key domain.Key) (domain.Decision, error) {
	s.hits = append(s.hits, key)
	return s.dec, s.err
}

func TestService_Decide_AllowsWhenNoStore(t *testing.T) {
	svc := Service{}
	dec, err := svc.Decide(context.Background(), "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dec.Allowed {
		t.Fatalf("expected allowed")
	}
	if dec.ResetIn != 0 {
		t.Fatalf("expected ResetIn=0 when there is no store, got %s", dec.ResetIn)
	}
}

func TestService_Decide_ReturnsStoreDecision(t *testing.T) {
	store := &fakeStore{dec: domain.Decision{Allowed: false, Limit: 10, ResetIn: 30 * time.Second}}
	svc := Service{Store: store}

	dec, err := svc.Decide(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Allowed {
		t.Fatalf("expected blocked")
	}
	if dec.ResetIn != 30*time.Second {
		t.Fatalf("expected ResetIn=30s, got %s", dec.ResetIn)
	}
	if len(store.hits) != 1 || store.hits[0] != "10.0.0.1" {
		t.Fatalf("expected one hit for key 10.0.0.1, got %v", store.hits)
	}
}

func TestService_Decide_FailsOpenOnStoreError(t *testing.T) {
	boom := errors.New("redis down")
	svc := Service{Store: &fakeStore{dec: domain.Decision{Limit: 10}, err: boom}}

	dec, err := svc.Decide(context.Background(), "k")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to be returned, got %v", err)
	}
	if !dec.Allowed {
		t.Fatalf("expected fail open")
	}
	if dec.Limit != 10 {
		t.Fatalf("expected limit to be preserved, got %d", dec.Limit)
	}
}
