package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestReadFile_SniffsContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	f, err := ReadFile(fileHeader(t, "cnic-front", png))

	require.NoError(t, err)
	assert.Equal(t, "cnic-front", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, png, f.Content)
}

func TestReadFile_PlainText(t *testing.T) {
	f, err := ReadFile(fileHeader(t, "notes.txt", []byte("checked in late")))

	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", f.ContentType)
}
