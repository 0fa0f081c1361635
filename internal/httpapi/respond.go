package httpapi

import (
	"encoding/json"
	"net/http"
)

// Upstream fresco por 1h; caches compartilhados podem servir velho por até 24h
// enquanto revalidam.
const cacheControl = "public, max-age=3600, s-maxage=3600, stale-while-revalidate=86400"

// A carta montada pode carregar nome e mensagem do usuário.
const cacheControlPrivate = "private, no-store"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
