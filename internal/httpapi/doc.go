// Package httpapi expõe o lookup por código postal em HTTP.
//
//	GET /api/lookup?code=K1A0A6           JSON do diretório, sem alteração
//	GET /api/representative?code=K1A0A6   deputado escolhido + carta + links
//	GET /api/stats                        contadores do rate limit
//	GET /healthz
package httpapi
