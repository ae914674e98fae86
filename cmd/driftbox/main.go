package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	zl "github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/driftbox/driftbox/internal/entity"
	"github.com/driftbox/driftbox/internal/entity/boltdb"
	"github.com/driftbox/driftbox/internal/entity/postgres"
	"github.com/driftbox/driftbox/internal/http"
	"github.com/driftbox/driftbox/internal/media"
	"github.com/driftbox/driftbox/internal/media/imagekit"
	"github.com/driftbox/driftbox/internal/media/localfs"
	"github.com/driftbox/driftbox/pkg/validator"
)

var version = "dev"

// Config represents the entire configuration as defined in the YAML file.
type Config struct {
	Media struct {
		ImageKit imagekit.Config `mapstructure:"imagekit"`
		Local    localfs.Config  `mapstructure:"local"`
	} `mapstructure:"media"`

	Store struct {
		Bolt     boltdb.Config   `mapstructure:"boltdb"`
		Postgres postgres.Config `mapstructure:"postgres"`
	} `mapstructure:"store"`

	HTTP http.Config `mapstructure:"http"`
}

var config Config

var (
	showVersion = flag.Bool("version", false, "print version information and exit")
	debugMode   = flag.Bool("debug", false, "enable debug logs")
	configFile  = flag.String("config", "", "path to driftbox configuration file")
)

var validate = validator.New()

func main() {
	flag.Parse()

	// Check if a version flag is set
	if *showVersion {
		fmt.Printf("driftbox: %s\n", version)
		os.Exit(0)
	}

	// Set the maximum number of operating system threads to use.
	runtime.GOMAXPROCS(runtime.NumCPU())

	// Setup logger
	log.Logger = zl.New(zl.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	zl.SetGlobalLevel(zl.InfoLevel)
	if *debugMode {
		zl.SetGlobalLevel(zl.DebugLevel)
	}

	// Load config file
	initConfig()

	// Missing credentials must kill the process here, not a request later
	if err := validate.Struct(&config.HTTP); err != nil {
		log.Fatal().Err(err).Str("c", "main").Msg("invalid http config")
	}

	// Pick the media store
	var mstore media.Store
	if config.Media.ImageKit.PrivateKey != "" {
		if err := validate.Struct(&config.Media.ImageKit); err != nil {
			log.Fatal().Err(err).Str("c", "main").Msg("invalid imagekit config")
		}
		mstore = imagekit.New(&config.Media.ImageKit)
	}
	if mstore == nil && config.Media.Local.RootDir != "" {
		if err := validate.Struct(&config.Media.Local); err != nil {
			log.Fatal().Err(err).Str("c", "main").Msg("invalid local media config")
		}
		mstore = localfs.New(afero.NewOsFs(), &config.Media.Local)
	}
	if mstore == nil {
		log.Fatal().Str("c", "main").Msg("media store config is missing")
	}

	// Pick the entity provider
	var provider entity.Provider
	if config.Store.Bolt.DbPath != "" {
		provider = boltdb.New(&config.Store.Bolt)
	}
	if provider == nil && config.Store.Postgres.DbURL != "" {
		provider = postgres.New(&config.Store.Postgres)
	}
	if provider == nil {
		log.Fatal().Str("c", "main").Msg("entity store config is missing")
	}
	provider = entity.WithLogging(provider)

	// Create and start http server
	if err := http.Serv(provider, mstore, &config.HTTP); err != nil {
		log.Fatal().Str("c", "main").Err(err).Msgf("driftbox crashed")
	}
}

func initConfig() {
	// Setup config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/driftbox/")
	if *configFile != "" {
		viper.SetConfigFile(*configFile)
	}
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Str("c", "config").Err(err).Msg("failed to read config")
	}

	// Bind env
	_ = viper.BindEnv("media.imagekit.public_key", "IMAGEKIT_PUBLIC_KEY")
	_ = viper.BindEnv("media.imagekit.private_key", "IMAGEKIT_PRIVATE_KEY")
	_ = viper.BindEnv("media.imagekit.url_endpoint", "IMAGEKIT_URL_ENDPOINT")

	_ = viper.BindEnv("media.local.root_dir", "MEDIA_ROOT_DIR")
	_ = viper.BindEnv("media.local.base_url", "MEDIA_BASE_URL")
	_ = viper.BindEnv("media.local.secret", "MEDIA_SECRET")

	_ = viper.BindEnv("store.boltdb.db_path", "BOLTDB_DB_PATH")
	_ = viper.BindEnv("store.postgres.db_url", "POSTGRES_DB_URL")

	_ = viper.BindEnv("http.addr", "HTTP_ADDR")
	_ = viper.BindEnv("http.https_addr", "HTTPS_ADDR")
	_ = viper.BindEnv("http.https_crtpath", "HTTPS_CRTPATH")
	_ = viper.BindEnv("http.https_keypath", "HTTPS_KEYPATH")
	_ = viper.BindEnv("http.jwt_secret", "JWT_SECRET")
	_ = viper.BindEnv("http.max_upload_size", "MAX_UPLOAD_SIZE")

	err := viper.Unmarshal(&config)
	if err != nil {
		log.Fatal().Str("c", "config").Err(err).Msg("failed to decode config into struct")
	}
}
