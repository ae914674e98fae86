package localfs

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	s := New(fs, &Config{
		RootDir: "/var/lib/driftbox/media",
		BaseURL: "https://media.example.com",
	})
	return s, fs
}

func TestUpload(t *testing.T) {
	s, fs := newTestStore(t)

	object, err := s.Upload("123.png", "/root/u1", strings.NewReader("png bytes"))
	require.NoError(t, err)

	require.Equal(t, "https://media.example.com/root/u1/123.png", object.URL)
	require.Equal(t, "/root/u1/123.png", object.FilePath)
	require.EqualValues(t, len("png bytes"), object.Size)
	require.Equal(t, "image", object.FileType)

	data, err := afero.ReadFile(fs, "/var/lib/driftbox/media/root/u1/123.png")
	require.NoError(t, err)
	require.Equal(t, "png bytes", string(data))
}

func TestUploadFileTypes(t *testing.T) {
	s, _ := newTestStore(t)

	object, err := s.Upload("doc.pdf", "/root/u1", strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.Equal(t, "non-image", object.FileType)
}

func TestAuthParams(t *testing.T) {
	s, _ := newTestStore(t)

	params, err := s.AuthParams()
	require.NoError(t, err)
	require.NotEmpty(t, params.Token)
	require.NotEmpty(t, params.Signature)
	require.Positive(t, params.Expire)
}
