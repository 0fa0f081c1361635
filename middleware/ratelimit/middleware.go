package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"rep-lookup/middleware/ratelimit/application"
	"rep-lookup/middleware/ratelimit/domain"

	"github.com/charmbracelet/log"
)

const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"

	unknownKey = "unknown"
)

type KeyFunc func(r *http.Request) string

type Options struct {
	Store              domain.WindowStore
	Stats              domain.StatsStore
	KeyFn              KeyFunc
	KeyHeader          string
	TrustXForwardedFor bool
	RejectStatus       int
	Logger             *log.Logger
}

// DefaultKeyFunc identifica o cliente: header configurado, depois o primeiro IP
// do X-Forwarded-For (se confiável), depois o host do RemoteAddr, e por fim
// "unknown".
//
// O X-Forwarded-For é forjável. Serve para mitigação de abuso, não use esta
// chave para nada que seja controle de acesso.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}

		if trustXFF {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		addr := strings.TrimSpace(r.RemoteAddr)
		host, _, err := net.SplitHostPort(addr)
		if err == nil && host != "" {
			return host
		}
		if addr != "" {
			return addr
		}
		return unknownKey
	}
}

// Middleware aplica o contador de janela fixa antes do próximo handler.
//
// Os headers X-RateLimit-* vão em toda resposta, liberada ou não. Bloqueio vira
// 429 com Retry-After e corpo JSON {"error": "..."}.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	logger := opts.Logger.WithPrefix("ratelimit")

	svc := application.Service{Store: opts.Store}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			dec, err := svc.Decide(r.Context(), domain.Key(key))
			if err != nil {
				logger.Warn("store failed, allowing request", "key", key, "err", err)
			}

			// sem contagem válida não há o que anunciar
			if opts.Store != nil && err == nil {
				setHeaders(w.Header(), dec)
			}

			if opts.Stats != nil {
				if err := opts.Stats.Record(r.Context(), domain.StatsEvent{
					Key:     domain.Key(key),
					Allowed: dec.Allowed,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				}); err != nil {
					logger.Debug("stats record failed", "err", err)
				}
			}

			if !dec.Allowed {
				logger.Info("request limited", "key", key, "path", r.URL.Path, "reset", dec.ResetSeconds())
				w.Header().Set("Retry-After", formatInt(dec.ResetSeconds()))
				writeError(w, opts.RejectStatus, rejectMessage(dec))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setHeaders(h http.Header, dec domain.Decision) {
	h.Set(HeaderLimit, formatInt(dec.Limit))
	h.Set(HeaderRemaining, formatInt(dec.Remaining))
	h.Set(HeaderReset, formatInt(dec.ResetSeconds()))
}

func rejectMessage(dec domain.Decision) string {
	secs := dec.ResetSeconds()
	unit := "seconds"
	if secs == 1 {
		unit = "second"
	}
	return "Too many requests. Please wait " + formatInt(secs) + " " + unit + " before trying again."
}
