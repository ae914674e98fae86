package migrate

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestExecUpRunsPendingOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Only migration 2 is pending; single transaction mode
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE two").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewMigrator(db)
	m.TransactionMode = SingleTransaction

	err = m.Exec(Up,
		Migration{ID: 1, Up: Queries([]string{"CREATE TABLE one ()"})},
		Migration{ID: 2, Up: Queries([]string{"CREATE TABLE two ()"})},
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecUpNothingPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	m := NewMigrator(db)
	err = m.Exec(Up, Migration{ID: 1, Up: Queries([]string{"CREATE TABLE one ()"})})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecDownRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE one").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	m := NewMigrator(db)
	err = m.Exec(Down, Migration{ID: 1, Down: Queries([]string{"DROP TABLE one"})})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
