// Package postcode normaliza e valida códigos postais canadenses.
package postcode

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid é devolvido antes de qualquer chamada de rede.
var ErrInvalid = errors.New("invalid postal code")

// Letras que o Canada Post usa: D, F, I, O, Q e U nunca aparecem; W e Z não
// abrem o código.
var format = regexp.MustCompile(`^[ABCEGHJ-NPRSTVXY][0-9][ABCEGHJ-NPRSTV-Z][0-9][ABCEGHJ-NPRSTV-Z][0-9]$`)

// Normalize tira espaços (inclusive o do meio) e põe em maiúsculas.
func Normalize(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

// Parse normaliza e valida. O resultado é o formato usado na URL do diretório
// ("K1A0A6").
func Parse(raw string) (string, error) {
	code := Normalize(raw)
	if !format.MatchString(code) {
		return "", ErrInvalid
	}
	return code, nil
}

// Format devolve a forma de exibição "K1A 0A6".
func Format(code string) string {
	if len(code) != 6 {
		return code
	}
	return code[:3] + " " + code[3:]
}
