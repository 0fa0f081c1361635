// Package representative escolhe o representante alvo dentro da resposta do
// diretório. É puro: nenhuma chamada de rede, nenhum estado compartilhado.
package representative
