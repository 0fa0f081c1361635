package representative

import (
	"errors"
	"strings"
)

// ErrNotFound indica que a resposta não tem nenhum registro do nível pedido.
// É diferente de falha na consulta.
var ErrNotFound = errors.New("representative not found")

// Matcher descreve um nível de governo por vocabulário, não por enum: o
// upstream não garante os rótulos, então o conjunto é extensível.
//
//   - Codes: siglas comparadas por igualdade exata ("mp")
//   - Titles: títulos procurados por substring em ElectedOffice
//   - Bodies: nomes da casa legislativa procurados em RepresentativeSetName
//
// Siglas nunca são procuradas por substring: "mpp" (deputado provincial)
// contém "mp" e seria escolhido no lugar do deputado federal.
type Matcher struct {
	Codes  []string
	Titles []string
	Bodies []string
}

// Federal casa deputados da Câmara dos Comuns.
var Federal = Matcher{
	Codes:  []string{"mp"},
	Titles: []string{"member of parliament"},
	Bodies: []string{"house of commons", "chambre des communes"},
}

// Match informa se o registro pertence ao nível do matcher.
func (m Matcher) Match(rec Record) bool {
	office := fold(rec.ElectedOffice)
	set := fold(rec.RepresentativeSetName)

	for _, code := range m.Codes {
		if office != "" && office == fold(code) {
			return true
		}
	}
	for _, title := range m.Titles {
		if t := fold(title); t != "" && strings.Contains(office, t) {
			return true
		}
	}
	for _, body := range m.Bodies {
		if b := fold(body); b != "" && strings.Contains(set, b) {
			return true
		}
	}
	return false
}

// SelectTarget devolve o primeiro registro, na ordem do upstream, que casa com m.
//
// Limitação conhecida: o upstream não ordena por relevância. Se houver mais de
// um registro válido (jurisdições sobrepostas), vence a posição, o que pode não
// ser o correto. Use Matches para detectar esse caso.
func SelectTarget(resp *Response, m Matcher) (Record, error) {
	if resp == nil {
		return Record{}, ErrNotFound
	}
	for _, rec := range resp.Representatives {
		if m.Match(rec) {
			return rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// Matches devolve todos os registros que casam, na ordem original.
func Matches(resp *Response, m Matcher) []Record {
	if resp == nil {
		return nil
	}
	var out []Record
	for _, rec := range resp.Representatives {
		if m.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
