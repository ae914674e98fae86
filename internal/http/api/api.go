package api

import (
	"math/rand"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/internal/media"
	"github.com/driftbox/driftbox/pkg/validator"
)

// DefaultMaxUploadSize caps direct uploads when no limit is configured.
const DefaultMaxUploadSize = 100 << 20

var validate = validator.New()

type Config struct {
	JWTSecret     string
	MaxUploadSize int64
}

func Load(app *fiber.App, store entity.Provider, mstore media.Store, cfg *Config) {

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}

	// Storage names for direct uploads are snowflakes, unique without
	// coordination between instances
	sg, err := snowflake.NewNode(int64(rand.Intn(1023)))
	if err != nil {
		log.Fatal().Err(err).Str("c", "api").Msg("failed to create snowflake node")
	}

	// create api API group
	api := app.Group("/api")

	// setup auth middleware, everything below requires a bearer token
	api.Use(AuthHandler(cfg.JWTSecret))

	// verify JWT token (required on a page load)
	api.Get("/check_token", CheckTokenHandler())

	// Entry listing and ingest
	api.Get("/files", ListEntriesHandler(store))
	api.Post("/files", RecordUploadHandler(store))
	api.Post("/files/upload", UploadFileHandler(store, mstore, sg, cfg.MaxUploadSize))

	// Flag toggles
	api.Patch("/files/:id<guid>/star", ToggleStarHandler(store))
	api.Patch("/files/:id<guid>/trash", ToggleTrashHandler(store))

	// Folders
	api.Post("/folders", CreateFolderHandler(store))

	// Signed credentials for direct-to-media-host uploads
	api.Get("/media/auth", UploadAuthHandler(mstore))
}
