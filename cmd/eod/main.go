package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/gymlog/internal/eodshell"
	"github.com/2beens/gymlog/internal/logging"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	baseURL := flag.String("url", "http://localhost:9000", "gymlog backend base URL")
	envFile := flag.String("envfile", ".env", "optional file with env vars")
	logsPath := flag.String("logs-path", "", "log file path, empty logs to stderr")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("failed to load env file %s: %s\n", *envFile, err)
	}

	logging.Setup(logging.LoggerSetupParams{
		ServiceName: "gymlog-eod",
		LogsPath:    *logsPath,
		LogToStdout: *logsPath == "",
		LogLevel:    *logLevel,
	})

	otelShutdown, err := tracing.HoneycombSetup(os.Getenv("HONEYCOMB_ENABLED") == "true", "gymlog-eod", nil)
	if err != nil {
		log.Fatalf("tracing setup: %s", err)
	}
	defer otelShutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := eodshell.NewClient(*baseURL, nil)
	eodshell.NewShell(client, eodshell.NewTokenStore(*baseURL)).Run(ctx)
}
