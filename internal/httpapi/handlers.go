package httpapi

import (
	"context"
	"errors"
	"net/http"

	"rep-lookup/internal/compose"
	"rep-lookup/internal/directory"
	"rep-lookup/internal/postcode"
	"rep-lookup/internal/representative"
	"rep-lookup/middleware/ratelimit/infra"

	"github.com/charmbracelet/log"
)

const (
	msgInvalidCode = "Please enter a valid postal code (e.g. K1A 0A6)."
	msgNoResults   = "No results found for this postal code."
	msgNoTarget    = "No federal representative found for this postal code."
	msgUnavailable = "The representative directory is unavailable. Please try again later."
)

// Fetcher devolve o JSON cru do diretório para um código já normalizado.
type Fetcher interface {
	Fetch(ctx context.Context, code string) ([]byte, error)
}

// StatsReader expõe as estatísticas do rate limit.
type StatsReader interface {
	Read(ctx context.Context) (infra.StatsSnapshot, error)
}

type Handler struct {
	dir         Fetcher
	stats       StatsReader
	matcher     representative.Matcher
	emailDomain string
	logger      *log.Logger
}

type Option func(*Handler)

func WithStats(s StatsReader) Option {
	return func(h *Handler) { h.stats = s }
}

func WithMatcher(m representative.Matcher) Option {
	return func(h *Handler) { h.matcher = m }
}

func WithEmailDomain(d string) Option {
	return func(h *Handler) { h.emailDomain = d }
}

func WithLogger(l *log.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

func New(dir Fetcher, opts ...Option) *Handler {
	h := &Handler{
		dir:         dir,
		matcher:     representative.Federal,
		emailDomain: compose.DefaultDomain,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	return h
}

// Routes monta o mux. Os middlewares de `limit` valem só para as rotas de
// lookup; health e stats ficam de fora.
func (h *Handler) Routes(limit ...func(http.Handler) http.Handler) *http.ServeMux {
	wrap := func(fn http.HandlerFunc) http.Handler {
		var next http.Handler = fn
		for i := len(limit) - 1; i >= 0; i-- {
			next = limit[i](next)
		}
		return next
	}

	mux := http.NewServeMux()
	mux.Handle("/api/lookup", wrap(h.Lookup))
	mux.Handle("/api/representative", wrap(h.Representative))
	mux.HandleFunc("/api/stats", h.Stats)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Lookup é o proxy: GET /api/lookup?code=... devolve o JSON do diretório como veio.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	body, err := h.dir.Fetch(r.Context(), code)
	if err != nil {
		h.writeDirectoryError(w, code, err)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type representativeResponse struct {
	PostalCode     string                `json:"postal_code"`
	Representative representative.Record `json:"representative"`
	Ambiguous      bool                  `json:"ambiguous"`
	Recipient      compose.Recipient     `json:"recipient"`
	Letter         compose.Letter        `json:"letter"`
	Links          *compose.Links        `json:"links,omitempty"`
}

// Representative faz o lookup, escolhe o deputado e já devolve a carta montada.
// Query opcional: sender, message. `ambiguous` indica que mais de um registro
// casou e ficamos com o primeiro.
func (h *Handler) Representative(w http.ResponseWriter, r *http.Request) {
	code, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	body, err := h.dir.Fetch(r.Context(), code)
	if err != nil {
		h.writeDirectoryError(w, code, err)
		return
	}
	resp, err := directory.Decode(body)
	if err != nil {
		h.writeDirectoryError(w, code, err)
		return
	}

	rec, err := representative.SelectTarget(resp, h.matcher)
	if err != nil {
		writeError(w, http.StatusNotFound, msgNoTarget)
		return
	}

	out := representativeResponse{
		PostalCode:     postcode.Format(code),
		Representative: rec,
	}
	if n := len(representative.Matches(resp, h.matcher)); n > 1 {
		out.Ambiguous = true
		h.logger.Warn("multiple representatives matched, using first", "code", code, "matches", n, "selected", rec.Name)
	}

	rcpt, err := compose.RecipientFor(rec, h.emailDomain)
	if err != nil {
		h.logger.Info("could not determine email", "name", rec.Name, "err", err)
	}
	out.Recipient = rcpt

	q := r.URL.Query()
	out.Letter = compose.DefaultTemplate.Fill(compose.Fields{
		Representative: rec.Name,
		District:       rec.DistrictName,
		PostalCode:     out.PostalCode,
		Sender:         q.Get("sender"),
		Message:        q.Get("message"),
	})
	if rcpt.Address != "" {
		links := compose.LinksFor(rcpt.Address, out.Letter)
		out.Links = &links
	}

	w.Header().Set("Cache-Control", cacheControlPrivate)
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	if h.stats == nil {
		writeError(w, http.StatusNotFound, "Stats are disabled.")
		return
	}
	snap, err := h.stats.Read(r.Context())
	if err != nil {
		h.logger.Error("stats read failed", "err", err)
		writeError(w, http.StatusServiceUnavailable, "Stats are unavailable.")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return "", false
	}
	code, err := postcode.Parse(r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidCode)
		return "", false
	}
	return code, true
}

func (h *Handler) writeDirectoryError(w http.ResponseWriter, code string, err error) {
	switch {
	case errors.Is(err, directory.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, msgInvalidCode)
	case errors.Is(err, directory.ErrNoResults):
		writeError(w, http.StatusNotFound, msgNoResults)
	default:
		h.logger.Error("directory lookup failed", "code", code, "err", err)
		writeError(w, http.StatusBadGateway, msgUnavailable)
	}
}
