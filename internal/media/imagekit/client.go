// Package imagekit is a client for the ImageKit media CDN: multipart uploads
// on behalf of the server, and HMAC-signed credentials for uploads performed
// directly by browsers.
package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/internal/media"
)

const (
	defaultUploadEndpoint = "https://upload.imagekit.io/api/v1/files/upload"
	ReqTimeout            = 60 * time.Second
	// TokenTTL is the validity window of signed upload credentials.
	TokenTTL = 30 * time.Minute
)

type Config struct {
	PublicKey   string `mapstructure:"public_key" validate:"required"`
	PrivateKey  string `mapstructure:"private_key" validate:"required"`
	URLEndpoint string `mapstructure:"url_endpoint" validate:"required,url"`
	// UploadEndpoint overrides the CDN upload API, used in tests.
	UploadEndpoint string `mapstructure:"upload_endpoint"`
}

type Client struct {
	cfg    *Config
	client *http.Client
}

func New(cfg *Config) *Client {
	if cfg.UploadEndpoint == "" {
		cfg.UploadEndpoint = defaultUploadEndpoint
	}
	log.Info().Str("c", "imagekit").Str("endpoint", cfg.URLEndpoint).Msg("initialized imagekit as media store")
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: ReqTimeout},
	}
}

func (c *Client) Name() string {
	return "imagekit"
}

func (c *Client) Upload(name, folder string, r io.Reader) (*media.Object, error) {
	pr, pw := io.Pipe()
	mwriter := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mwriter, name, folder, r)
		if cerr := mwriter.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequest(http.MethodPost, c.cfg.UploadEndpoint, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mwriter.FormDataContentType())
	// ImageKit authenticates server-side calls with the private key as the
	// basic auth username and an empty password.
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("imagekit upload: expected status code %d - received %d: %s",
			http.StatusOK, resp.StatusCode, body)
	}

	object := new(media.Object)
	if err = json.NewDecoder(resp.Body).Decode(object); err != nil {
		return nil, err
	}
	return object, nil
}

func writeUploadForm(mwriter *multipart.Writer, name, folder string, r io.Reader) error {
	if err := mwriter.WriteField("fileName", name); err != nil {
		return err
	}
	if err := mwriter.WriteField("folder", folder); err != nil {
		return err
	}
	// The server already generates collision-free names
	if err := mwriter.WriteField("useUniqueFileName", "false"); err != nil {
		return err
	}
	part, err := mwriter.CreateFormFile("file", name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// AuthParams signs a fresh upload token the way the CDN verifies it:
// hex(HMAC-SHA1(token + expire, privateKey)).
func (c *Client) AuthParams() (*media.AuthParams, error) {
	if c.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("imagekit: private key is not configured")
	}
	token := uuid.NewString()
	expire := time.Now().Add(TokenTTL).Unix()
	return &media.AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: Sign(token, expire, c.cfg.PrivateKey),
	}, nil
}

// Sign computes the upload credential signature for a token/expire pair.
func Sign(token string, expire int64, privateKey string) string {
	mac := hmac.New(sha1.New, []byte(privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
