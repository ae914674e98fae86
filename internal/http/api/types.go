package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/driftbox/driftbox/pkg/ns"
)

const (
	StatusOk           = fiber.StatusOK
	StatusCreated      = fiber.StatusCreated
	StatusBadRequest   = fiber.StatusBadRequest
	StatusUnauthorized = fiber.StatusUnauthorized
	StatusNotFound     = fiber.StatusNotFound
)

const (
	ErrBadRequest    = "bad request body"
	ErrUnauthorized  = "authorization failed"
	ErrEntryNotFound = "file not found or unauthorized"
	ErrNoFile        = "no file uploaded"
	ErrMediaType     = "only image files and PDF are supported"
	ErrFileTooLarge  = "file exceeds the upload size limit"
	ErrInvalidUpload = "invalid file upload data"
)

type Response struct {
	Success bool        `json:"success,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CreateFolderRequest struct {
	Name     string        `json:"name" validate:"required,notblank"`
	UserID   string        `json:"userId" validate:"required"`
	ParentID ns.NullString `json:"parentId" validate:"omitempty,uuid"`
}

// UploadResult is the metadata the media host reports for a completed
// direct-to-host upload.
type UploadResult struct {
	URL          string        `json:"url" validate:"required,url"`
	Name         string        `json:"name"`
	Size         int64         `json:"size" validate:"gte=0"`
	FileType     string        `json:"fileType"`
	FilePath     string        `json:"filePath"`
	ThumbnailURL ns.NullString `json:"thumbnailUrl"`
}

type RecordUploadRequest struct {
	UserID   string        `json:"userId" validate:"required"`
	ParentID ns.NullString `json:"parentId" validate:"omitempty,uuid"`
	Upload   UploadResult  `json:"upload" validate:"required"`
}
