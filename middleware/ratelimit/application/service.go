package application

import (
	"context"

	"rep-lookup/middleware/ratelimit/domain"
)

// Service concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
// Falha da store libera a requisição (fail open) e o erro volta para quem chamou
// registrar: o limiter é mitigação de abuso, não controle de acesso.
type Service struct {
	Store domain.WindowStore
}

func (s Service) Decide(ctx context.Context, key domain.Key) (domain.Decision, error) {
	if s.Store == nil {
		return domain.Decision{Allowed: true}, nil
	}

	dec, err := s.Store.Hit(ctx, key)
	if err != nil {
		return domain.Decision{Allowed: true, Limit: dec.Limit}, err
	}
	return dec, nil
}
