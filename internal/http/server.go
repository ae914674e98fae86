package http

import (
	"errors"

	fzl "github.com/gofiber/contrib/fiberzerolog"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/internal/http/api"
	"github.com/driftbox/driftbox/internal/media"
)

type Config struct {
	Addr         string `mapstructure:"addr"`
	HTTPSAddr    string `mapstructure:"https_addr"`
	HTTPSKeyPath string `mapstructure:"https_keypath"`
	HTTPSCrtPath string `mapstructure:"https_crtpath"`
	// JWTSecret verifies the HS256 bearer tokens issued by the identity
	// provider.
	JWTSecret     string `mapstructure:"jwt_secret" validate:"required"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

func Serv(store entity.Provider, mstore media.Store, cfg *Config) error {

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = api.DefaultMaxUploadSize
	}

	fconfig := fiber.Config{
		BodyLimit:             int(cfg.MaxUploadSize) + (1 << 20), // multipart framing overhead
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError // Status code defaults to 500
			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code != fiber.StatusInternalServerError {
				return ctx.Status(code).JSON(api.Response{Message: err.Error()})
			}
			return ctx.Status(code).JSON(api.Response{Message: "internal server error"})
		},
	}

	// Initialize fiber app
	app := fiber.New(fconfig)

	// Enable logger
	logger := log.With().Str("c", "httpserver").Logger()
	app.Use(fzl.New(fzl.Config{Logger: &logger}))

	// Enable cors
	app.Use(cors.New())

	// Register API routes
	api.Load(app, store, mstore, &api.Config{
		JWTSecret:     cfg.JWTSecret,
		MaxUploadSize: cfg.MaxUploadSize,
	})

	// Error channel to capture any listen errors
	errChan := make(chan error)

	// Listen on HTTP
	go func() {
		if cfg.Addr != "" {
			log.Info().Str("c", "http").Str("addr", cfg.Addr).Msg("starting http server")
			errChan <- app.Listen(cfg.Addr)
		}
	}()

	// Listen on HTTPS
	go func() {
		if cfg.HTTPSAddr != "" && cfg.HTTPSCrtPath != "" && cfg.HTTPSKeyPath != "" {
			log.Info().Str("c", "http").Str("addr", cfg.HTTPSAddr).Msg("starting https server")
			errChan <- app.ListenTLS(cfg.HTTPSAddr, cfg.HTTPSCrtPath, cfg.HTTPSKeyPath)
		}
	}()

	// Return the first error received
	return <-errChan
}
