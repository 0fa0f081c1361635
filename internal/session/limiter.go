// Package session limita lookups do lado do cliente, por sessão.
//
// A sessão vive só em memória (um processo do cliente interativo) e acaba
// quando ele termina. São dois portões independentes:
//
//   - cooldown: intervalo mínimo entre lookups aceitas
//   - teto: número máximo de lookups aceitas na vida da sessão, sem reset
//
// Tentativas negadas não gastam o teto nem reiniciam o cooldown.
package session

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultCooldown = 3 * time.Second
	DefaultMax      = 20
)

type Reason string

const (
	ReasonNone      Reason = ""
	ReasonCooldown  Reason = "cooldown"
	ReasonExhausted Reason = "session_exhausted"
)

type Decision struct {
	Allowed   bool
	Remaining int
	// Wait é quanto falta para o cooldown acabar. Zero quando a sessão esgotou:
	// esperar não adianta.
	Wait   time.Duration
	Reason Reason
}

// WaitSeconds arredonda Wait para cima.
func (d Decision) WaitSeconds() int {
	if d.Wait <= 0 {
		return 0
	}
	return int(math.Ceil(d.Wait.Seconds()))
}

type Limiter struct {
	mu       sync.Mutex
	id       string
	cooldown *rate.Limiter
	every    time.Duration
	max      int
	count    int
	now      func() time.Time
}

type Option func(*Limiter)

func WithCooldown(d time.Duration) Option {
	return func(l *Limiter) { l.every = d }
}

func WithMax(n int) Option {
	return func(l *Limiter) { l.max = n }
}

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New abre uma sessão nova com id aleatório.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		id:    uuid.NewString(),
		every: DefaultCooldown,
		max:   DefaultMax,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	// token bucket de 1 ficha que recarrega a cada `every`: exatamente um cooldown
	lim := rate.Inf
	if l.every > 0 {
		lim = rate.Every(l.every)
	}
	l.cooldown = rate.NewLimiter(lim, 1)
	return l
}

func (l *Limiter) ID() string { return l.id }

// Used devolve quantas lookups já foram aceitas.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// CheckAndRecord decide e, se aceitar, registra a lookup.
func (l *Limiter) CheckAndRecord() Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count >= l.max {
		return Decision{Reason: ReasonExhausted}
	}

	if !l.cooldown.AllowN(now, 1) {
		missing := 1 - l.cooldown.TokensAt(now)
		return Decision{
			Remaining: l.max - l.count,
			Wait:      time.Duration(missing * float64(l.every)),
			Reason:    ReasonCooldown,
		}
	}

	l.count++
	return Decision{Allowed: true, Remaining: l.max - l.count}
}
