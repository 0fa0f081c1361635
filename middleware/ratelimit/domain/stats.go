package domain

import (
	"context"
	"time"
)

// StatsEvent representa um evento de decisão do rate limit.
//
// Method/Path são strings genéricas, sem amarrar o evento a net/http.
//
// Observação: cuidado com cardinalidade. Key costuma ser um IP; salvar por chave
// sem controle pode explodir o número de chaves no Redis.
type StatsEvent struct {
	Key     Key
	Allowed bool

	Method string
	Path   string

	At time.Time
}

// Route devolve "METHOD /path" (ou vazio quando ambos faltam).
func (e StatsEvent) Route() string {
	switch {
	case e.Method == "" && e.Path == "":
		return ""
	case e.Method == "":
		return e.Path
	case e.Path == "":
		return e.Method
	}
	return e.Method + " " + e.Path
}

// StatsStore persiste estatísticas das decisões.
//
// O middleware trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
