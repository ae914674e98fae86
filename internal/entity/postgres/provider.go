package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/pkg/ns"
)

const entryColumns = `id, name, path, size, type, file_url, thumbnail_url, user_id, parent_id, is_folder, is_starred, is_trash, created_at, updated_at`

type PGProvider struct {
	db *sql.DB
}

type Config struct {
	DbURL string `mapstructure:"db_url"`
}

func New(cfg *Config) entity.Provider {
	db := NewDb(cfg.DbURL, false)
	log.Info().Str("c", "postgres").Msg("initialized postgres as entity provider")
	return &PGProvider{db}
}

func (pgp *PGProvider) Name() string {
	return "postgres"
}

func (pgp *PGProvider) Get(id, userID string) (*entity.Entry, error) {
	row := pgp.db.QueryRow(`
		SELECT `+entryColumns+`
		FROM entries
		WHERE id=$1 AND user_id=$2;
	`, id, userID)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotExist
		}
		return nil, pqErrToOs(err)
	}
	return e, nil
}

func (pgp *PGProvider) GetChild(userID string, parentID ns.NullString) ([]*entity.Entry, error) {
	var rows *sql.Rows
	var err error
	if parentID == "" {
		rows, err = pgp.db.Query(`
			SELECT `+entryColumns+`
			FROM entries
			WHERE user_id=$1 AND parent_id IS NULL
			ORDER BY is_folder DESC, name;
		`, userID)
	} else {
		rows, err = pgp.db.Query(`
			SELECT `+entryColumns+`
			FROM entries
			WHERE user_id=$1 AND parent_id=$2
			ORDER BY is_folder DESC, name;
		`, userID, string(parentID))
	}
	if err != nil {
		return nil, pqErrToOs(err)
	}
	defer rows.Close()

	entries := make([]*entity.Entry, 0)
	for rows.Next() {
		child, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, child)
	}
	return entries, rows.Err()
}

func (pgp *PGProvider) Create(e *entity.Entry) (*entity.Entry, error) {
	if err := entity.ValidateParent(pgp, e.UserID, e.ParentID); err != nil {
		return nil, err
	}
	err := pgp.db.QueryRow(`
		INSERT INTO entries (name, path, size, type, file_url, thumbnail_url, user_id, parent_id, is_folder, is_starred, is_trash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at;
	`, e.Name, e.Path, e.Size, e.Type, e.FileURL, &e.ThumbnailURL, e.UserID, &e.ParentID, e.IsFolder, e.IsStarred, e.IsTrash).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, pqErrToOs(err)
	}
	return e, nil
}

func (pgp *PGProvider) Update(id, userID string, patch *entity.Patch) (*entity.Entry, error) {
	set := "updated_at = NOW()"
	args := make([]interface{}, 0, 4)
	phc := 1 // placeHolderCounter
	if patch.Starred != nil {
		set += fmt.Sprintf(", is_starred=$%d", phc)
		args = append(args, *patch.Starred)
		phc++
	}
	if patch.Trashed != nil {
		set += fmt.Sprintf(", is_trash=$%d", phc)
		args = append(args, *patch.Trashed)
		phc++
	}
	args = append(args, id, userID)

	query := fmt.Sprintf(`
		UPDATE entries SET %s
		WHERE id=$%d AND user_id=$%d
		RETURNING `+entryColumns+`;
	`, set, phc, phc+1)

	e, err := scanEntry(pgp.db.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotExist
		}
		return nil, pqErrToOs(err)
	}
	return e, nil
}

func (pgp *PGProvider) Close() error {
	return pgp.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*entity.Entry, error) {
	e := new(entity.Entry)
	err := row.Scan(
		&e.ID, &e.Name, &e.Path, &e.Size, &e.Type, &e.FileURL, &e.ThumbnailURL,
		&e.UserID, &e.ParentID, &e.IsFolder, &e.IsStarred, &e.IsTrash,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Handle postgres error codes
func pqErrToOs(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // Unique violation
			return entity.ErrExist
		case "23503": // Foreign key violation -> parent row vanished between check and insert
			return entity.ErrInvalidParent
		case "22P02": // Invalid text representation -> malformed uuid in a lookup
			return entity.ErrNotExist
		default:
			return err
		}
	}
	return err
}
