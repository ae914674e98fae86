package postgres

import (
	"database/sql"

	_ "github.com/lib/pq" // Import the PostgreSQL driver
	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/pkg/migrate"
)

// Driver - for now we only support postgres
const Driver = "postgres"

// NewDb creates a new database connection using the dbUrl
// It returns the *sql.DB object representing the connection.
func NewDb(connStr string, skipMigration bool) *sql.DB {
	db, err := sql.Open(Driver, connStr)
	if err != nil {
		log.Fatal().Err(err).Str("c", "postgres").Msg("could not open postgres connection")
	}
	// Bound the pool; every request opens a short-lived session and bursts of
	// uploads must not exhaust the database.
	db.SetMaxOpenConns(100)
	// Ping the database to ensure connectivity
	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Str("c", "postgres").Msg("ping failed")
	}
	// Perform database migrations
	if !skipMigration {
		if err = Migrate(db); err != nil {
			log.Fatal().Err(err).Str("c", "postgres").Msg("failed to execute migration")
		}
	}
	return db
}

// Migrate performs database migrations using the provided *sql.DB connection.
func Migrate(db *sql.DB) error {
	m := migrate.NewMigrator(db)
	m.TransactionMode = migrate.SingleTransaction
	return m.Exec(migrate.Up, migrations...)
}
