package media

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestSave(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(root)

	name, err := storage.Save(upload(t, "cat photo.png", []byte("first")))
	require.NoError(t, err)
	assert.Equal(t, "posts/cat_photo.png", name)

	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Same name again must not overwrite the first upload.
	second, err := storage.Save(upload(t, "cat photo.png", []byte("second")))
	require.NoError(t, err)
	assert.NotEqual(t, name, second)
	assert.Regexp(t, `^posts/cat_photo_[0-9a-f]{8}\.png$`, second)

	data, err = os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestSaveStripsDirectories(t *testing.T) {
	storage := NewStorage(t.TempDir())

	name, err := storage.Save(upload(t, "../../etc/passwd", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "posts/passwd", name)
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(root)

	src := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errors.New("connection reset")))
	_, err := storage.write("broken.png", src)
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, UploadDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(root)

	name, err := storage.Save(upload(t, "cat.png", []byte("x")))
	require.NoError(t, err)

	require.NoError(t, storage.Remove(name))
	_, err = os.Stat(filepath.Join(root, name))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, storage.Remove(name))
	require.NoError(t, storage.Remove(""))
}

func TestURL(t *testing.T) {
	assert.Equal(t, "", URL(""))
	assert.Equal(t, "/media/posts/a.png", URL("posts/a.png"))
}
