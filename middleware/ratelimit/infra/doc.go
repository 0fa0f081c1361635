// Package infra contém implementações concretas para os contratos do pacote domain.
//
//   - Store: contador de janela fixa por chave, em memória, com limpeza disparada por tamanho
//   - RedisStore: o mesmo contador compartilhado entre instâncias (script Lua)
//   - MemoryStatsStore / RedisStatsStore: estatísticas de decisões
//   - ChanPool: semáforo simples para limite de concorrência
package infra
