// Package ratelimit fornece adapters HTTP (net/http) para o rate limit de janela
// fixa e para o limite de concorrência do serviço de lookup.
//
// Camadas:
//
//   - domain: contratos e o algoritmo de janela fixa (sem net/http)
//   - application: decisão allow/deny com política fail open, acquire/timeout
//   - infra: Store em memória, RedisStore, estatísticas, semáforo
//   - ratelimit (este pacote): middlewares HTTP, extração de chave, headers e status
//
// Fluxo:
//
//  1. Extrai a chave do cliente (header/XFF/RemoteAddr)
//  2. Registra o hit e obtém a decisão
//  3. Escreve X-RateLimit-Limit/Remaining/Reset em toda resposta
//  4. Se bloqueado, responde 429 com Retry-After; senão chama o próximo handler
//
// O limite é por processo quando a store é a de memória. Com várias instâncias
// use infra.RedisStore (RATE_STORE=redis no cmd/lookup-server).
package ratelimit
