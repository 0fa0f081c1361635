// fake-directory imita o endpoint /postcodes/{code}/ do diretório de
// representantes para testes locais do lookup-server e do findmp.
//
//	DIRECTORY_URL=http://localhost:8081 go run ./cmd/lookup-server
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rep-lookup/internal/postcode"
	"rep-lookup/internal/representative"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", getenvDefault("FAKE_DIRECTORY_ADDR", ":8081"), "listen address")
	delay := flag.Duration("delay", 0, "artificial latency per request")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "fake-directory",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newHandler(fixtures, *delay, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", *addr, "codes", len(fixtures))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}

func newHandler(data map[string][]representative.Record, delay time.Duration, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /postcodes/{code}/", func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		code, err := postcode.Parse(r.PathValue("code"))
		if err != nil {
			logger.Debug("invalid code", "raw", r.PathValue("code"))
			http.Error(w, "Invalid postal code", http.StatusBadRequest)
			return
		}
		reps, ok := data[code]
		if !ok {
			logger.Debug("unknown code", "code", code)
			http.NotFound(w, r)
			return
		}

		logger.Info("lookup", "code", code, "representatives", len(reps))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(representative.Response{Representatives: reps})
	})
	return mux
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

var fixtures = map[string][]representative.Record{
	// Ottawa: municipal, provincial e federal, nessa ordem
	"K1A0A6": {
		{Name: "Sam Ortega", ElectedOffice: "Councillor", RepresentativeSetName: "Ottawa City Council", DistrictName: "Somerset"},
		{Name: "Priya Nair", ElectedOffice: "MPP", RepresentativeSetName: "Legislative Assembly of Ontario", DistrictName: "Ottawa Centre"},
		{Name: "Daniel Okafor", ElectedOffice: "MP", RepresentativeSetName: "House of Commons", DistrictName: "Ottawa Centre", PartyName: "Liberal"},
	},
	// Montréal: rótulos em francês, deputado com email no diretório
	"H2X1Y4": {
		{Name: "Élise Tremblay", ElectedOffice: "Député", RepresentativeSetName: "Chambre des communes", DistrictName: "Papineau", Email: "elise.tremblay@parl.gc.ca"},
	},
	// só nível provincial: lookup ok, mas sem deputado federal
	"M5V3L9": {
		{Name: "Morgan Lee", ElectedOffice: "MPP", RepresentativeSetName: "Legislative Assembly of Ontario", DistrictName: "Spadina-Fort York"},
	},
}
