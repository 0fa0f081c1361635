// Package application contém os casos de uso do rate limit e do limite de
// concorrência.
//
// Depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Decide(ctx, key) devolve uma Decision (allow/deny, restante, reset).
package application
