// findmp é o cliente interativo: pergunta o código postal, consulta o
// lookup-server e mostra o deputado federal com links prontos para escrever.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rep-lookup/internal/compose"
	"rep-lookup/internal/directory"
	"rep-lookup/internal/representative"
	"rep-lookup/internal/session"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", getenvDefault("LOOKUP_SERVER", "http://localhost:8080"), "lookup-server base URL")
	code := flag.String("code", "", "postal code; skips the prompt and exits after one lookup")
	sender := flag.String("name", os.Getenv("FINDMP_NAME"), "your name, used to sign the letter")
	message := flag.String("message", "", "message body for the letter")
	domain := flag.String("email-domain", compose.DefaultDomain, "domain used to guess missing email addresses")
	showLetter := flag.Bool("letter", false, "print the composed letter")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "findmp",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	limiter := session.New()
	logger.Debug("session started", "id", limiter.ID(), "server", *server)

	f := &finder{
		dir:         directory.NewGatewayClient(*server, directory.WithLogger(logger.WithPrefix("client"))),
		limiter:     limiter,
		matcher:     representative.Federal,
		emailDomain: *domain,
	}
	fields := compose.Fields{Sender: *sender, Message: *message}

	if *code != "" {
		if !run(ctx, f, *code, fields, *showLetter) {
			os.Exit(1)
		}
		return
	}

	for {
		raw, err := promptPostalCode()
		if err != nil {
			logger.Debug("prompt ended", "err", err)
			return
		}
		run(ctx, f, raw, fields, *showLetter)
		if ctx.Err() != nil || !confirmAnother() {
			break
		}
	}
	logger.Debug("session ended", "id", limiter.ID(), "lookups", limiter.Used())
}

func run(ctx context.Context, f *finder, raw string, fields compose.Fields, showLetter bool) bool {
	var (
		res    result
		runErr error
	)
	err := spinner.New().
		Title("Looking up your representative...").
		Action(func() {
			res, runErr = f.find(ctx, raw, fields)
		}).
		Run()
	if err == nil {
		err = runErr
	}

	if err != nil {
		fmt.Println(renderError(describe(err)))
		return false
	}

	fmt.Println(renderResult(res))
	fmt.Println(renderLinks(res))
	if showLetter {
		fmt.Println()
		fmt.Println(res.Letter.Subject)
		fmt.Println()
		fmt.Println(res.Letter.Body)
	}
	return true
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
