package imagekit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "private_key", user)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "123.png", r.FormValue("fileName"))
		require.Equal(t, "/root/u1", r.FormValue("folder"))
		require.Equal(t, "false", r.FormValue("useUniqueFileName"))

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"url": "https://ik.example.com/root/u1/123.png",
			"thumbnailUrl": "https://ik.example.com/tr:n-thumb/root/u1/123.png",
			"filePath": "/root/u1/123.png",
			"name": "123.png",
			"size": 9,
			"fileType": "image"
		}`)
	}))
	defer srv.Close()

	c := New(&Config{
		PublicKey:      "public_key",
		PrivateKey:     "private_key",
		URLEndpoint:    "https://ik.example.com",
		UploadEndpoint: srv.URL,
	})

	object, err := c.Upload("123.png", "/root/u1", strings.NewReader("png bytes"))
	require.NoError(t, err)
	require.Equal(t, "https://ik.example.com/root/u1/123.png", object.URL)
	require.Equal(t, "/root/u1/123.png", object.FilePath)
	require.EqualValues(t, 9, object.Size)
}

func TestUploadRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Your account cannot be authenticated"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(&Config{
		PublicKey:      "public_key",
		PrivateKey:     "private_key",
		URLEndpoint:    "https://ik.example.com",
		UploadEndpoint: srv.URL,
	})

	_, err := c.Upload("123.png", "/root/u1", strings.NewReader("png bytes"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "received 403")
}

func TestAuthParams(t *testing.T) {
	c := New(&Config{
		PublicKey:   "public_key",
		PrivateKey:  "private_key",
		URLEndpoint: "https://ik.example.com",
	})

	params, err := c.AuthParams()
	require.NoError(t, err)
	require.NotEmpty(t, params.Token)
	require.Greater(t, params.Expire, time.Now().Unix())
	require.Equal(t, Sign(params.Token, params.Expire, "private_key"), params.Signature)

	// Signature is deterministic for a given token/expire/key triple
	require.Equal(t,
		"b5f5b06a233d4f775bc735a76431031a67995df2",
		Sign("token", 1700000000, "private_key"),
	)
}
