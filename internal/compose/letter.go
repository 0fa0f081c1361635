package compose

import "strings"

// Fields preenchem os marcadores do template.
type Fields struct {
	Representative string
	District       string
	PostalCode     string
	Sender         string
	Message        string
}

// Template usa os marcadores {{representative}}, {{district}},
// {{postal_code}}, {{sender}} e {{message}}.
type Template struct {
	Subject string
	Body    string
}

var DefaultTemplate = Template{
	Subject: "A message from a constituent in {{district}}",
	Body: "Dear {{representative}},\n\n" +
		"I am writing to you as a constituent in {{district}} ({{postal_code}}).\n\n" +
		"{{message}}\n\n" +
		"Sincerely,\n" +
		"{{sender}}\n",
}

type Letter struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Fill substitui os marcadores. Campos vazios viram texto vazio; a mensagem
// vazia some junto com a linha em branco extra.
func (t Template) Fill(f Fields) Letter {
	r := strings.NewReplacer(
		"{{representative}}", f.Representative,
		"{{district}}", f.District,
		"{{postal_code}}", f.PostalCode,
		"{{sender}}", f.Sender,
		"{{message}}", strings.TrimSpace(f.Message),
	)
	body := r.Replace(t.Body)
	for strings.Contains(body, "\n\n\n") {
		body = strings.ReplaceAll(body, "\n\n\n", "\n\n")
	}
	return Letter{
		Subject: strings.TrimSpace(r.Replace(t.Subject)),
		Body:    body,
	}
}
