package infra

import (
	"context"
	"sync"
	"time"

	"rep-lookup/middleware/ratelimit/domain"
)

// Store é um contador de janela fixa por chave, em memória.
//
// O estado é do processo: com N instâncias atrás de um balanceador o limite
// efetivo vira limit × N. Para limite global use RedisStore.
//
// Não há varredura por TTL. Quando a tabela passa de maxKeys chaves, o próprio
// Hit remove as janelas já expiradas antes de contar. Rajadas de chaves
// distintas abaixo do limiar nunca são limpas (a não ser com o janitor opcional).
type Store struct {
	mu           sync.Mutex
	entries      map[string]domain.Window
	limit        int
	window       time.Duration
	maxKeys      int
	cleanupEvery time.Duration
	now          func() time.Time
}

type StoreOption func(*Store)

// WithMaxKeys define o tamanho da tabela que dispara a limpeza (padrão 1000).
// Zero ou negativo desliga a limpeza disparada.
func WithMaxKeys(n int) StoreOption {
	return func(s *Store) { s.maxKeys = n }
}

// WithCleanupEvery liga o janitor periódico (desligado por padrão).
func WithCleanupEvery(d time.Duration) StoreOption {
	return func(s *Store) { s.cleanupEvery = d }
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(limit int, window time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]domain.Window),
		limit:   limit,
		window:  window,
		maxKeys: 1000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Limit() int                  { return s.limit }
func (s *Store) Window() time.Duration       { return s.window }
func (s *Store) CleanupEvery() time.Duration { return s.cleanupEvery }

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Hit implementa domain.WindowStore. Nunca retorna erro.
func (s *Store) Hit(_ context.Context, key domain.Key) (domain.Decision, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxKeys > 0 && len(s.entries) > s.maxKeys {
		s.cleanupLocked(now)
	}

	w, dec := s.entries[string(key)].Hit(now, s.window, s.limit)
	s.entries[string(key)] = w
	return dec, nil
}

// Cleanup remove as janelas expiradas e devolve quantas saíram.
func (s *Store) Cleanup() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked(now)
}

func (s *Store) cleanupLocked(now time.Time) int {
	removed := 0
	for k, w := range s.entries {
		if w.Expired(now, s.window) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// StartJanitor inicia uma goroutine que limpa janelas expiradas periodicamente.
// Só roda se WithCleanupEvery foi configurado. Pare cancelando o contexto.
func (s *Store) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context no janitor.
type DoneContext interface {
	Done() <-chan struct{}
}
