package postgres

import "github.com/driftbox/driftbox/pkg/migrate"

const entriesTable = `
	CREATE TABLE entries
	(
		id            UUID PRIMARY KEY   DEFAULT gen_random_uuid(),
		name          TEXT      NOT NULL,
		path          TEXT      NOT NULL,
		size          BIGINT    NOT NULL DEFAULT 0,
		type          TEXT      NOT NULL,
		file_url      TEXT      NOT NULL DEFAULT '',
		thumbnail_url TEXT,
		user_id       VARCHAR(128) NOT NULL,
		parent_id     UUID REFERENCES entries (id),
		is_folder     BOOLEAN   NOT NULL DEFAULT FALSE,
		is_starred    BOOLEAN   NOT NULL DEFAULT FALSE,
		is_trash      BOOLEAN   NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMP NOT NULL DEFAULT NOW()
	);
`

// Every read is scoped by owner and parent, so that pair is the only index
// the API needs.
const entriesOwnerParentIdx = `
	CREATE INDEX entries_user_parent_idx ON entries (user_id, parent_id);
`

const dropEntries = `
	DROP TABLE IF EXISTS entries;
`

var migrations = []migrate.Migration{
	{
		ID: 1,
		Up: migrate.Queries([]string{
			entriesTable,
			entriesOwnerParentIdx,
		}),
		Down: migrate.Queries([]string{dropEntries}),
	},
}
