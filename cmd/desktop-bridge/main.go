// desktop-bridge runs the line-delimited JSON dispatcher over stdin/stdout
// for the desktop shell. One request per line in, one response per line out;
// stderr carries logs so stdout stays clean for the protocol.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/desktop-bridge
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tailorbooks/backoffice_backend/bridge"
	"github.com/tailorbooks/backoffice_backend/config"
	"github.com/tailorbooks/backoffice_backend/models"
)

func main() {
	logger := config.GetLogger()
	logger.SetOutput(os.Stderr)

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := bridge.NewServer(bridge.ModelStore{}, logger)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bridge stopped: %v\n", err)
		os.Exit(1)
	}
}
