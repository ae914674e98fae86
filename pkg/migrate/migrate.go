// Package migrate is a minimal forward/backward SQL migration runner.
// Applied migration ids are tracked in a schema_migrations table so a
// migration set can be executed repeatedly and only pending entries run.
package migrate

import (
	"database/sql"
	"fmt"
	"sort"
)

// Direction of a migration run.
type Direction int

const (
	Up Direction = iota
	Down
)

// TransactionMode controls how migrations are wrapped in transactions.
type TransactionMode int

const (
	// TransactionPerMigration wraps each migration in its own transaction.
	TransactionPerMigration TransactionMode = iota
	// SingleTransaction wraps the whole run in one transaction.
	SingleTransaction
)

// MigrationFunc applies one side of a migration inside a transaction.
type MigrationFunc func(tx *sql.Tx) error

// Queries builds a MigrationFunc that executes the given statements in order.
func Queries(queries []string) MigrationFunc {
	return func(tx *sql.Tx) error {
		for _, q := range queries {
			if _, err := tx.Exec(q); err != nil {
				return err
			}
		}
		return nil
	}
}

// Migration is a single schema change. Ids must be unique and define the
// execution order.
type Migration struct {
	ID   int
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db *sql.DB

	TransactionMode TransactionMode
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db, TransactionMode: TransactionPerMigration}
}

// Exec runs the pending migrations in the given direction.
func (m *Migrator) Exec(direction Direction, migrations ...Migration) error {
	if _, err := m.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (id INT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("migrate: failed to create version table: %w", err)
	}

	applied, err := m.applied()
	if err != nil {
		return err
	}

	sort.Slice(migrations, func(i, j int) bool {
		if direction == Up {
			return migrations[i].ID < migrations[j].ID
		}
		return migrations[i].ID > migrations[j].ID
	})

	pending := make([]Migration, 0, len(migrations))
	for _, mig := range migrations {
		if direction == Up && !applied[mig.ID] {
			pending = append(pending, mig)
		}
		if direction == Down && applied[mig.ID] {
			pending = append(pending, mig)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if m.TransactionMode == SingleTransaction {
		tx, err := m.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()
		for _, mig := range pending {
			if err = m.run(tx, direction, mig); err != nil {
				return err
			}
		}
		return tx.Commit()
	}

	for _, mig := range pending {
		tx, err := m.db.Begin()
		if err != nil {
			return err
		}
		if err = m.run(tx, direction, mig); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) run(tx *sql.Tx, direction Direction, mig Migration) error {
	fn, record := mig.Up, `INSERT INTO schema_migrations (id) VALUES ($1)`
	if direction == Down {
		fn, record = mig.Down, `DELETE FROM schema_migrations WHERE id=$1`
	}
	if fn != nil {
		if err := fn(tx); err != nil {
			return fmt.Errorf("migrate: migration %d failed: %w", mig.ID, err)
		}
	}
	if _, err := tx.Exec(record, mig.ID); err != nil {
		return fmt.Errorf("migrate: failed to record migration %d: %w", mig.ID, err)
	}
	return nil
}

func (m *Migrator) applied() (map[int]bool, error) {
	rows, err := m.db.Query(`SELECT id FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}
	return applied, rows.Err()
}
