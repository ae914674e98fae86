// Package boltdb implements the entity provider on a single bbolt file, for
// single-binary deployments and tests where running postgres is overkill.
package boltdb

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/pkg/ns"
)

const entriesBucket = "entries"

type Provider struct {
	db *bbolt.DB
}

type Config struct {
	DbPath string `mapstructure:"db_path"`
}

func New(cfg *Config) entity.Provider {
	db, err := bbolt.Open(cfg.DbPath, 0666, nil)
	if err != nil {
		log.Fatal().Str("c", "boltdb").Err(err).Msg("failed to open db")
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(entriesBucket))
		return err
	})
	if err != nil {
		log.Fatal().Str("c", "boltdb").Err(err).Msg("failed to init db")
	}
	log.Info().Str("c", "boltdb").Str("path", cfg.DbPath).Msg("initialized boltdb as entity provider")

	return &Provider{db}
}

func (bp *Provider) Name() string {
	return "boltdb"
}

func (bp *Provider) Get(id, userID string) (*entity.Entry, error) {
	var e *entity.Entry
	err := bp.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(entriesBucket)).Get([]byte(id))
		if data == nil {
			return entity.ErrNotExist
		}
		e = deserializeEntry(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Entries of other users are indistinguishable from missing ones
	if e.UserID != userID {
		return nil, entity.ErrNotExist
	}
	return e, nil
}

func (bp *Provider) GetChild(userID string, parentID ns.NullString) ([]*entity.Entry, error) {
	entries := make([]*entity.Entry, 0)
	err := bp.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(entriesBucket)).ForEach(func(k, v []byte) error {
			e := deserializeEntry(v)
			if e.UserID == userID && e.ParentID == parentID {
				entries = append(entries, e)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	// Folders first, then by name, same as the postgres provider
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsFolder != entries[j].IsFolder {
			return entries[i].IsFolder
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (bp *Provider) Create(e *entity.Entry) (*entity.Entry, error) {
	if err := entity.ValidateParent(bp, e.UserID, e.ParentID); err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	err := bp.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(entriesBucket)).Put([]byte(e.ID), serializeEntry(e))
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (bp *Provider) Update(id, userID string, patch *entity.Patch) (*entity.Entry, error) {
	var e *entity.Entry
	err := bp.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(entriesBucket))
		data := b.Get([]byte(id))
		if data == nil {
			return entity.ErrNotExist
		}
		e = deserializeEntry(data)
		if e.UserID != userID {
			return entity.ErrNotExist
		}
		if patch.Starred != nil {
			e.IsStarred = *patch.Starred
		}
		if patch.Trashed != nil {
			e.IsTrash = *patch.Trashed
		}
		e.UpdatedAt = time.Now()
		return b.Put([]byte(id), serializeEntry(e))
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (bp *Provider) Close() error {
	return bp.db.Close()
}
