package entity

import (
	"errors"
	"os"
)

var (
	ErrExist      = os.ErrExist
	ErrNotExist   = os.ErrNotExist
	ErrPermission = os.ErrPermission
	// ErrInvalidParent is returned when a create names a parent that does not
	// exist, is not a folder, or belongs to another user. The three cases are
	// indistinguishable on purpose so a caller cannot probe another user's
	// tree.
	ErrInvalidParent = errors.New("parent folder not found or unauthorized")
)
