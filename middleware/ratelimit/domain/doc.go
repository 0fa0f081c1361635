// Package domain define contratos e tipos de domínio para o rate limit de janela
// fixa, estatísticas e limite de concorrência.
//
// Este pacote não depende de net/http nem de implementações concretas. O
// algoritmo de janela fixa mora aqui (Window.Hit) para que a store em memória e
// qualquer outra implementação compartilhem exatamente a mesma regra.
package domain
