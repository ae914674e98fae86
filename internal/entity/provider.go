package entity

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/pkg/ns"
)

// Provider is the entry store. Every read and mutation is scoped by the
// owning user; a lookup for another user's entry behaves exactly like a
// lookup for a missing entry.
type Provider interface {
	Name() string
	// Get is a point lookup scoped to the owner, used as the universal
	// ownership gate.
	Get(id, userID string) (*Entry, error)
	// GetChild lists the entries directly under parentID for the owner.
	// An empty parentID lists the root level.
	GetChild(userID string, parentID ns.NullString) ([]*Entry, error)
	// Create validates the parent reference per ValidateParent and persists
	// the entry, assigning id and timestamps. Nothing is written when the
	// parent check fails.
	Create(entry *Entry) (*Entry, error)
	// Update applies a flag patch scoped by owner and id and returns the
	// updated row, or ErrNotExist when no row matches.
	Update(id, userID string, patch *Patch) (*Entry, error)
	Close() error
}

// ValidateParent enforces the tree rules checked before any create that
// names a parent: the parent must exist, belong to the same user, and be a
// folder. All three failures collapse into ErrInvalidParent. A nil parent
// means root level and is always valid.
func ValidateParent(p Provider, userID string, parentID ns.NullString) error {
	if parentID == "" {
		return nil
	}
	parent, err := p.Get(string(parentID), userID)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return ErrInvalidParent
		}
		return err
	}
	if !parent.IsFolder {
		return ErrInvalidParent
	}
	return nil
}

// WithLogging wraps a provider with per-operation debug logs.
func WithLogging(p Provider) Provider {
	return &logProvider{p}
}

type logProvider struct {
	p Provider
}

func (lp *logProvider) Name() string {
	return lp.p.Name()
}

func (lp *logProvider) Get(id, userID string) (*Entry, error) {
	log.Debug().Str("c", "entity").Str("id", id).Str("user", userID).Msg("GET")
	return lp.p.Get(id, userID)
}

func (lp *logProvider) GetChild(userID string, parentID ns.NullString) ([]*Entry, error) {
	log.Debug().Str("c", "entity").Str("user", userID).Str("parent", string(parentID)).Msg("GET_CHILD")
	return lp.p.GetChild(userID, parentID)
}

func (lp *logProvider) Create(entry *Entry) (*Entry, error) {
	log.Debug().Str("c", "entity").Str("name", entry.Name).Str("user", entry.UserID).
		Str("parent", string(entry.ParentID)).Bool("folder", entry.IsFolder).Msg("CREATE")
	return lp.p.Create(entry)
}

func (lp *logProvider) Update(id, userID string, patch *Patch) (*Entry, error) {
	log.Debug().Str("c", "entity").Str("id", id).Str("user", userID).Msg("UPDATE")
	return lp.p.Update(id, userID, patch)
}

func (lp *logProvider) Close() error {
	return lp.p.Close()
}
