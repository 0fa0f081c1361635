package compose

import (
	"errors"
	"strings"
	"unicode"

	"rep-lookup/internal/representative"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultDomain é o domínio dos endereços da Câmara dos Comuns.
const DefaultDomain = "parl.gc.ca"

// ErrUndeterminable: o nome não tem partes suficientes para montar o endereço.
var ErrUndeterminable = errors.New("email address cannot be determined from name")

// asciiFold cobre letras que não se decompõem em NFD.
var asciiFold = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "œ", "oe", "ø", "o", "ł", "l",
	"đ", "d", "ð", "d", "þ", "th", "ı", "i", "ŀ", "l",
)

// DeriveEmail monta "{primeiro}.{último}@{domain}" a partir do nome de exibição.
//
// É um palpite pela convenção da instituição e pode errar (nomes compostos,
// apelidos). Acentos saem, tudo fica minúsculo e só a-z e hífen ficam.
func DeriveEmail(name, domain string) (string, error) {
	if domain == "" {
		domain = DefaultDomain
	}

	// transformers têm estado: um por chamada
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		return "", ErrUndeterminable
	}

	var parts []string
	for _, p := range strings.Fields(strings.ToLower(plain)) {
		p = strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || r == '-' {
				return r
			}
			return -1
		}, asciiFold.Replace(p))
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", ErrUndeterminable
	}
	return parts[0] + "." + parts[len(parts)-1] + "@" + domain, nil
}

// Recipient é o destinatário final da mensagem.
type Recipient struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	// Derived marca endereço deduzido do nome (não veio do diretório).
	Derived bool `json:"derived"`
}

// RecipientFor usa o email do diretório quando existe e deduz caso contrário.
func RecipientFor(rec representative.Record, domain string) (Recipient, error) {
	if addr := strings.TrimSpace(rec.Email); addr != "" {
		return Recipient{Name: rec.Name, Address: addr}, nil
	}
	addr, err := DeriveEmail(rec.Name, domain)
	if err != nil {
		return Recipient{Name: rec.Name}, err
	}
	return Recipient{Name: rec.Name, Address: addr, Derived: true}, nil
}
