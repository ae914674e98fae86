// Package localfs is a media store backed by a local filesystem, meant for
// development and tests. Files land under a root directory and are assumed
// to be served by something else under the configured base URL.
package localfs

import (
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/driftbox/driftbox/internal/media"
	"github.com/driftbox/driftbox/internal/media/imagekit"
	"github.com/driftbox/driftbox/pkg/locker"
)

type Config struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Secret signs upload credentials; direct uploads are not actually
	// served by this store, but clients built against the CDN flow still
	// request them.
	Secret string `mapstructure:"secret"`
}

type Store struct {
	fs     afero.Fs
	cfg    *Config
	locker *locker.Locker
}

func New(fs afero.Fs, cfg *Config) *Store {
	if err := fs.MkdirAll(cfg.RootDir, 0755); err != nil {
		log.Fatal().Str("c", "localfs").Err(err).Msg("failed to create media root")
	}
	log.Info().Str("c", "localfs").Str("root", cfg.RootDir).Msg("initialized localfs as media store")
	return &Store{fs: fs, cfg: cfg, locker: locker.New()}
}

func (s *Store) Name() string {
	return "localfs"
}

func (s *Store) Upload(name, folder string, r io.Reader) (*media.Object, error) {
	fpath := path.Join("/", folder, name)
	full := filepath.Join(s.cfg.RootDir, filepath.FromSlash(fpath))

	var size int64
	err := s.locker.Do(fpath, func() error {
		if err := s.fs.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return err
		}
		f, err := s.fs.Create(full)
		if err != nil {
			return err
		}
		n, err := io.Copy(f, r)
		size = n
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// Drop the partial write, the request is terminal anyway
			_ = s.fs.Remove(full)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &media.Object{
		URL:      strings.TrimSuffix(s.cfg.BaseURL, "/") + fpath,
		FilePath: fpath,
		Name:     name,
		Size:     size,
		FileType: fileType(name),
	}, nil
}

// AuthParams mirrors the CDN credential shape so client flows keep working
// against a local store.
func (s *Store) AuthParams() (*media.AuthParams, error) {
	secret := s.cfg.Secret
	if secret == "" {
		// No configured secret, sign with a throwaway one
		secret = uuid.NewString()
	}
	token := uuid.NewString()
	expire := time.Now().Add(imagekit.TokenTTL).Unix()
	return &media.AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: imagekit.Sign(token, expire, secret),
	}, nil
}

func fileType(name string) string {
	mediaType := mime.TypeByExtension(filepath.Ext(name))
	switch {
	case mediaType == "application/pdf":
		return "non-image"
	case mediaType == "":
		return "image"
	default:
		return strings.SplitN(mediaType, "/", 2)[0]
	}
}
