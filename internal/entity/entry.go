package entity

import (
	"time"

	"github.com/driftbox/driftbox/pkg/ns"
)

// TypeFolder is the Type value carried by folder entries. File entries carry
// the media content type reported by the upload instead.
const TypeFolder = "folder"

// Entry is a single row of the storage tree, either a file or a folder.
// Folders have no content of their own: FileURL is empty and Size is 0.
type Entry struct {
	ID           string        `json:"id"`
	Name         string        `json:"name" validate:"required,notblank"`
	Path         string        `json:"path"`
	Size         int64         `json:"size"`
	Type         string        `json:"type"`
	FileURL      string        `json:"fileUrl"`
	ThumbnailURL ns.NullString `json:"thumbnailUrl"`
	UserID       string        `json:"userId" validate:"required"`
	ParentID     ns.NullString `json:"parentId"`
	IsFolder     bool          `json:"isFolder"`
	IsStarred    bool          `json:"isStarred"`
	IsTrash      bool          `json:"isTrash"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Patch is a partial update of an Entry's mutable flags. Nil fields stay
// untouched. UserID and the tree shape are immutable after creation and
// deliberately have no place here.
type Patch struct {
	Starred *bool
	Trashed *bool
}
