package infra

import (
	"context"
	"sync"

	"rep-lookup/middleware/ratelimit/domain"
)

type Counters struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

func (c *Counters) add(allowed bool) {
	if allowed {
		c.Allowed++
		return
	}
	c.Denied++
}

// StatsSnapshot é uma cópia imutável dos contadores, pronta para JSON.
type StatsSnapshot struct {
	Total   Counters            `json:"total"`
	ByRoute map[string]Counters `json:"by_route"`
	ByKey   map[string]Counters `json:"by_key,omitempty"`
}

// MemoryStatsStore guarda contadores em memória, sem expiração.
// Com trackKeys ligado a cardinalidade cresce com o número de IPs.
type MemoryStatsStore struct {
	mu      sync.Mutex
	total   Counters
	byRoute map[string]*Counters
	byKey   map[string]*Counters

	trackKeys bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackKeys(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackKeys = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		byRoute: make(map[string]*Counters),
		byKey:   make(map[string]*Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Allowed)
	if route := ev.Route(); route != "" {
		bump(s.byRoute, route, ev.Allowed)
	}
	if s.trackKeys && ev.Key != "" {
		bump(s.byKey, string(ev.Key), ev.Allowed)
	}
	return nil
}

func bump(m map[string]*Counters, k string, allowed bool) {
	c, ok := m[k]
	if !ok {
		c = &Counters{}
		m[k] = c
	}
	c.add(allowed)
}

func (s *MemoryStatsStore) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := StatsSnapshot{
		Total:   s.total,
		ByRoute: copyCounters(s.byRoute),
	}
	if s.trackKeys {
		out.ByKey = copyCounters(s.byKey)
	}
	return out
}

func copyCounters(in map[string]*Counters) map[string]Counters {
	out := make(map[string]Counters, len(in))
	for k, v := range in {
		out[k] = *v
	}
	return out
}

// Read implementa a leitura usada pelo endpoint de estatísticas.
func (s *MemoryStatsStore) Read(context.Context) (StatsSnapshot, error) {
	return s.Snapshot(), nil
}
