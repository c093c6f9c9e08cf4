package photo

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photos", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["photos"][0]
}

func TestValidate_AllowedExtensions(t *testing.T) {
	storage := NewStorage(t.TempDir())

	for _, name := range []string{"a.png", "b.jpg", "c.JPEG", "d.gif", "e.webp"} {
		fh := fileHeader(t, name, "data")
		assert.NoError(t, storage.Validate(fh), name)
	}
}

func TestValidate_RejectsDisallowedExtension(t *testing.T) {
	storage := NewStorage(t.TempDir())

	for _, name := range []string{"doc.pdf", "script.sh", "noextension", "image.bmp"} {
		fh := fileHeader(t, name, "data")
		err := storage.Validate(fh)
		assert.Error(t, err, name)
		assert.Contains(t, err.Error(), "not allowed")
	}
}

func TestValidate_RejectsOversizeFile(t *testing.T) {
	storage := NewStorage(t.TempDir())

	fh := fileHeader(t, "big.png", "x")
	fh.Size = MaxFileSize + 1

	err := storage.Validate(fh)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}

func TestStore_WritesUnderMemorialDir(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)

	fh := fileHeader(t, "portrait.png", "image-bytes")
	storedName, fileURL, err := storage.Store("mem-1", fh)

	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(storedName, ".png"))
	assert.NotEqual(t, "portrait.png", storedName)
	assert.Equal(t, "/uploads/mem-1/"+storedName, fileURL)

	data, err := os.ReadFile(filepath.Join(dir, "mem-1", storedName))
	assert.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestStore_UniqueNamesPerUpload(t *testing.T) {
	storage := NewStorage(t.TempDir())

	first, _, err := storage.Store("mem-1", fileHeader(t, "same.jpg", "one"))
	assert.NoError(t, err)
	second, _, err := storage.Store("mem-1", fileHeader(t, "same.jpg", "two"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	storage := NewStorage(t.TempDir())

	assert.NoError(t, storage.Remove("mem-1", "never-stored.png"))
}

func TestRemove_DeletesStoredFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorage(dir)

	storedName, _, err := storage.Store("mem-1", fileHeader(t, "portrait.png", "image-bytes"))
	assert.NoError(t, err)

	assert.NoError(t, storage.Remove("mem-1", storedName))
	_, err = os.Stat(filepath.Join(dir, "mem-1", storedName))
	assert.True(t, os.IsNotExist(err))
}
