package directory

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoResults: código válido, mas o diretório não conhece (404).
	ErrNoResults = errors.New("no results for postal code")
	// ErrInvalidCode: o diretório rejeitou o código (400).
	ErrInvalidCode = errors.New("postal code rejected by directory")
	// ErrRateLimited: o gateway devolveu 429. Veja RateLimitError.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnavailable cobre falha de rede e qualquer outro status não-2xx.
	ErrUnavailable = errors.New("directory unavailable")
)

// RateLimitError carrega quanto tempo esperar antes de tentar de novo.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rate limited: %s", e.Message)
	}
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
