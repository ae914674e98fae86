package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/pkg/ns"
)

func ListEntriesHandler(store entity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(string)

		// Callers may only list their own tree
		if c.Query("userId") != userID {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}

		parentID := c.Query("parentId")
		if err := validate.Var(parentID, "omitempty,uuid"); err != nil {
			return fiber.NewError(StatusBadRequest, ErrBadRequest)
		}

		entries, err := store.GetChild(userID, ns.NullString(parentID))
		if err != nil {
			return err
		}
		return c.Status(StatusOk).JSON(entries)
	}
}

func CreateFolderHandler(store entity.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(string)

		req := new(CreateFolderRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(StatusBadRequest, ErrBadRequest)
		}

		if req.UserID != userID {
			return fiber.NewError(StatusUnauthorized, ErrUnauthorized)
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(StatusBadRequest, err.Error())
		}

		folder, err := store.Create(&entity.Entry{
			Name:     strings.TrimSpace(req.Name),
			Path:     "/folders/" + userID + "/" + uuid.NewString(),
			Type:     entity.TypeFolder,
			UserID:   userID,
			ParentID: req.ParentID,
			IsFolder: true,
		})
		if err != nil {
			if errors.Is(err, entity.ErrInvalidParent) {
				return fiber.NewError(StatusNotFound, err.Error())
			}
			return err
		}

		return c.Status(StatusOk).
			JSON(Response{Success: true, Message: "folder created successfully", Data: folder})
	}
}

func ToggleStarHandler(store entity.Provider) fiber.Handler {
	return toggleFlagHandler(store, func(e *entity.Entry) *entity.Patch {
		starred := !e.IsStarred
		return &entity.Patch{Starred: &starred}
	})
}

func ToggleTrashHandler(store entity.Provider) fiber.Handler {
	return toggleFlagHandler(store, func(e *entity.Entry) *entity.Patch {
		trashed := !e.IsTrash
		return &entity.Patch{Trashed: &trashed}
	})
}

// toggleFlagHandler reads the entry to learn the current flag value and
// writes the flipped one. Two concurrent toggles may observe the same value
// and collapse into one effective flip; the store's statement-level
// atomicity is the only guarantee here.
func toggleFlagHandler(store entity.Provider, flip func(*entity.Entry) *entity.Patch) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(string)
		id := c.Params("id")

		e, err := store.Get(id, userID)
		if err != nil {
			if errors.Is(err, entity.ErrNotExist) {
				return fiber.NewError(StatusNotFound, ErrEntryNotFound)
			}
			return err
		}

		updated, err := store.Update(id, userID, flip(e))
		if err != nil {
			if errors.Is(err, entity.ErrNotExist) {
				return fiber.NewError(StatusNotFound, ErrEntryNotFound)
			}
			return err
		}

		return c.Status(StatusOk).JSON(updated)
	}
}
