package api

import (
	"errors"
	"path/filepath"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/internal/media"
	"github.com/driftbox/driftbox/pkg/lreader"
	"github.com/driftbox/driftbox/pkg/ns"
)

// UploadFileHandler ingests a multipart upload: the file goes to the media
// store, the resulting metadata becomes a new entry. The declared parent is
// validated before any byte leaves the process and is the parent the entry
// is stored under.
func UploadFileHandler(store entity.Provider, mstore media.Store, sg *snowflake.Node, maxSize int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(string)

		if c.FormValue("userId") != userID {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}
		parentID := ns.NullString(c.FormValue("parentId"))

		fheader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(StatusBadRequest, ErrNoFile)
		}

		mediaType := fheader.Header.Get("Content-Type")
		if err = validate.Var(mediaType, "required,mediatype"); err != nil {
			return fiber.NewError(StatusBadRequest, ErrMediaType)
		}

		// Check the parent before touching the media host so a rejected
		// request leaves nothing behind anywhere
		if err = entity.ValidateParent(store, userID, parentID); err != nil {
			if errors.Is(err, entity.ErrInvalidParent) {
				return fiber.NewError(StatusNotFound, err.Error())
			}
			return err
		}

		f, err := fheader.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		folder := "/root/" + userID
		if parentID != "" {
			folder = "/folders/" + userID + "/" + string(parentID)
		}
		storageName := sg.Generate().String() + filepath.Ext(fheader.Filename)

		object, err := mstore.Upload(storageName, folder, lreader.New(f, maxSize))
		if err != nil {
			if errors.Is(err, lreader.ErrLimit) {
				return fiber.NewError(StatusBadRequest, ErrFileTooLarge)
			}
			return err
		}

		size := object.Size
		if size == 0 {
			size = fheader.Size
		}

		e, err := store.Create(&entity.Entry{
			Name:         fheader.Filename,
			Path:         object.FilePath,
			Size:         size,
			Type:         mediaType,
			FileURL:      object.URL,
			ThumbnailURL: ns.NullString(object.ThumbnailURL),
			UserID:       userID,
			ParentID:     parentID,
		})
		if err != nil {
			if errors.Is(err, entity.ErrInvalidParent) {
				return fiber.NewError(StatusNotFound, err.Error())
			}
			return err
		}

		return c.Status(StatusCreated).JSON(e)
	}
}

// RecordUploadHandler records an upload the client already completed against
// the media host directly. Only metadata flows through here.
func RecordUploadHandler(store entity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(string)

		req := new(RecordUploadRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(StatusBadRequest, ErrBadRequest)
		}

		if req.UserID != userID {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(StatusBadRequest, ErrInvalidUpload)
		}

		// The media host omits fields for some file kinds; fall back to the
		// permissive defaults rather than rejecting
		name := req.Upload.Name
		if name == "" {
			name = "Untitled"
		}
		fileType := req.Upload.FileType
		if fileType == "" {
			fileType = "image"
		}
		fpath := req.Upload.FilePath
		if fpath == "" {
			fpath = "/driftbox/" + userID + "/" + name
		}

		e, err := store.Create(&entity.Entry{
			Name:         name,
			Path:         fpath,
			Size:         req.Upload.Size,
			Type:         fileType,
			FileURL:      req.Upload.URL,
			ThumbnailURL: req.Upload.ThumbnailURL,
			UserID:       userID,
			ParentID:     req.ParentID,
		})
		if err != nil {
			if errors.Is(err, entity.ErrInvalidParent) {
				return fiber.NewError(StatusNotFound, err.Error())
			}
			return err
		}

		return c.Status(StatusCreated).JSON(e)
	}
}

// UploadAuthHandler hands out the time-scoped signed parameters a browser
// needs for a direct-to-media-host upload.
func UploadAuthHandler(mstore media.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, err := mstore.AuthParams()
		if err != nil {
			return err
		}
		return c.Status(StatusOk).JSON(params)
	}
}
