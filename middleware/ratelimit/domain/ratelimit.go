package domain

// Camada de domínio do rate limit.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import (
	"context"
	"math"
	"time"
)

type Key string

// WindowStore registra uma requisição para a chave e devolve a decisão.
//
// A implementação precisa fazer o ciclo leitura/incremento/escrita de forma
// atômica por chave (mutex em memória, script Lua no Redis, etc).
type WindowStore interface {
	Hit(ctx context.Context, key Key) (Decision, error)
}

// Decision é o resultado de um Hit.
type Decision struct {
	Allowed bool
	// Limit é o máximo de requisições por janela.
	Limit int
	// Remaining nunca é negativo.
	Remaining int
	// ResetIn é o tempo até a janela atual expirar.
	ResetIn time.Duration
}

// ResetSeconds arredonda ResetIn para cima, em segundos inteiros.
func (d Decision) ResetSeconds() int {
	if d.ResetIn <= 0 {
		return 0
	}
	return int(math.Ceil(d.ResetIn.Seconds()))
}
