package compose

import (
	"net/url"
	"strings"
)

// escape codifica para query string com espaço como %20 (clientes de email
// não entendem "+").
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func query(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(pairs[i])
		b.WriteByte('=')
		b.WriteString(escape(pairs[i+1]))
	}
	return b.String()
}

// MailtoURL monta o link mailto: com assunto e corpo.
func MailtoURL(to string, l Letter) string {
	return "mailto:" + to + "?" + query("subject", l.Subject, "body", l.Body)
}

// GmailURL abre o compose do Gmail na web.
func GmailURL(to string, l Letter) string {
	return "https://mail.google.com/mail/?" + query("view", "cm", "fs", "1", "to", to, "su", l.Subject, "body", l.Body)
}

// OutlookURL abre o compose do Outlook na web.
func OutlookURL(to string, l Letter) string {
	return "https://outlook.office.com/mail/deeplink/compose?" + query("to", to, "subject", l.Subject, "body", l.Body)
}

// Links agrupa os três formatos.
type Links struct {
	Mailto  string `json:"mailto"`
	Gmail   string `json:"gmail"`
	Outlook string `json:"outlook"`
}

func LinksFor(to string, l Letter) Links {
	return Links{
		Mailto:  MailtoURL(to, l),
		Gmail:   GmailURL(to, l),
		Outlook: OutlookURL(to, l),
	}
}
