// Package media defines the boundary to the hosted service that holds the
// actual file bytes and derived thumbnails. This service only ever stores
// the metadata a Store reports back.
package media

import "io"

// Object describes a stored blob as reported by the media host.
type Object struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FilePath     string `json:"filePath"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	FileType     string `json:"fileType"`
}

// AuthParams are time-scoped signed credentials a browser client presents to
// upload directly to the media host, bypassing this service.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

type Store interface {
	Name() string
	// Upload stores the blob read from r under folder/name and returns the
	// resulting object metadata. The reader's error, including a size-cap
	// violation, aborts the upload.
	Upload(name, folder string, r io.Reader) (*Object, error)
	// AuthParams issues signed credentials for a direct-to-host upload.
	AuthParams() (*AuthParams, error)
}
