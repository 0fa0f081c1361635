package domain

import "time"

// Window é o estado de uma chave no contador de janela fixa.
//
// Count só cresce dentro de [Start, Start+duração). Depois disso a janela é
// reiniciada (Start=agora) e o excedente não é carregado.
type Window struct {
	Start time.Time
	Count int
}

// Expired informa se `now` já está fora da janela.
func (w Window) Expired(now time.Time, d time.Duration) bool {
	return !now.Before(w.Start.Add(d))
}

// Hit aplica o algoritmo de janela fixa e devolve a janela atualizada junto
// com a decisão. Não tem efeito colateral: quem chama guarda o resultado.
func (w Window) Hit(now time.Time, d time.Duration, limit int) (Window, Decision) {
	if w.Start.IsZero() || w.Expired(now, d) {
		w = Window{Start: now}
	}
	w.Count++

	remaining := limit - w.Count
	if remaining < 0 {
		remaining = 0
	}
	return w, Decision{
		Allowed:   w.Count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetIn:   w.Start.Add(d).Sub(now),
	}
}
