package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	zl "github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/internal/entity/postgres"
)

// Applies the entries schema to a postgres database without starting the
// server, for deployments where the server user has no DDL rights.
func main() {
	dbURL := flag.String("db-url", "", "Postgres database url to run entries schema migrations against.")

	// Parse the flags
	flag.Parse()

	if *dbURL == "" {
		fmt.Println("Error: flag --db-url must be provided")
		flag.Usage()
		os.Exit(1)
	}

	// Setup logger
	log.Logger = zl.New(zl.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	zl.SetGlobalLevel(zl.DebugLevel)

	// NewDb pings the database and applies pending migrations
	db := postgres.NewDb(*dbURL, false)
	defer db.Close()

	log.Info().Msg("entries schema migration complete")
}
