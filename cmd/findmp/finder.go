package main

import (
	"context"
	"errors"
	"fmt"

	"rep-lookup/internal/compose"
	"rep-lookup/internal/directory"
	"rep-lookup/internal/postcode"
	"rep-lookup/internal/representative"
	"rep-lookup/internal/session"
)

// SessionError é a recusa do limitador local. Nenhuma requisição foi feita.
type SessionError struct {
	Decision session.Decision
}

func (e *SessionError) Error() string {
	if e.Decision.Reason == session.ReasonExhausted {
		return "lookup limit reached for this session; restart to continue"
	}
	secs := e.Decision.WaitSeconds()
	unit := "seconds"
	if secs == 1 {
		unit = "second"
	}
	return fmt.Sprintf("please wait %d %s before the next lookup", secs, unit)
}

type lookuper interface {
	Lookup(ctx context.Context, code string) (*representative.Response, error)
}

type finder struct {
	dir         lookuper
	limiter     *session.Limiter
	matcher     representative.Matcher
	emailDomain string
}

type result struct {
	PostalCode     string
	Representative representative.Record
	Ambiguous      bool
	Recipient      compose.Recipient
	Letter         compose.Letter
	Links          *compose.Links
}

// find valida o código, passa pelo limitador da sessão e só então consulta.
// Código inválido não gasta cota.
func (f *finder) find(ctx context.Context, raw string, fields compose.Fields) (result, error) {
	code, err := postcode.Parse(raw)
	if err != nil {
		return result{}, err
	}

	if dec := f.limiter.CheckAndRecord(); !dec.Allowed {
		return result{}, &SessionError{Decision: dec}
	}

	resp, err := f.dir.Lookup(ctx, code)
	if err != nil {
		return result{}, err
	}

	rec, err := representative.SelectTarget(resp, f.matcher)
	if err != nil {
		return result{}, err
	}

	out := result{
		PostalCode:     postcode.Format(code),
		Representative: rec,
		Ambiguous:      len(representative.Matches(resp, f.matcher)) > 1,
	}

	rcpt, err := compose.RecipientFor(rec, f.emailDomain)
	if err != nil && !errors.Is(err, compose.ErrUndeterminable) {
		return result{}, err
	}
	out.Recipient = rcpt

	fields.Representative = rec.Name
	fields.District = rec.DistrictName
	fields.PostalCode = out.PostalCode
	out.Letter = compose.DefaultTemplate.Fill(fields)
	if rcpt.Address != "" {
		links := compose.LinksFor(rcpt.Address, out.Letter)
		out.Links = &links
	}
	return out, nil
}

// describe traduz erros para a mensagem mostrada ao usuário.
func describe(err error) string {
	var sessErr *SessionError
	var rlErr *directory.RateLimitError
	switch {
	case errors.As(err, &sessErr):
		return sessErr.Error()
	case errors.As(err, &rlErr):
		if rlErr.Message != "" {
			return rlErr.Message
		}
		return fmt.Sprintf("Too many requests. Please wait %s before trying again.", rlErr.RetryAfter)
	case errors.Is(err, postcode.ErrInvalid), errors.Is(err, directory.ErrInvalidCode):
		return "Please enter a valid postal code (e.g. K1A 0A6)."
	case errors.Is(err, directory.ErrNoResults):
		return "No results found for this postal code."
	case errors.Is(err, representative.ErrNotFound):
		return "No federal representative found for this postal code."
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	default:
		return "The lookup service is unavailable. Please try again later."
	}
}
