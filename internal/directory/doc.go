// Package directory é o cliente HTTP do diretório de representantes
// (Represent API) e do endpoint /api/lookup do gateway.
//
// Erros seguem a taxonomia: ErrInvalidCode (400), ErrNoResults (404),
// ErrRateLimited (429, com RateLimitError), ErrUnavailable (resto). Não há
// retry automático.
package directory
