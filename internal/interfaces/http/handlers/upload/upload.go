// Package upload reads multipart files into store uploads.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/namuve/frontdesk/internal/domain/record"
)

// ReadFile loads fh into memory and sniffs its content type. The client's
// declared type is ignored; browsers send application/octet-stream for
// camera captures.
func ReadFile(fh *multipart.FileHeader) (record.File, error) {
	f, err := fh.Open()
	if err != nil {
		return record.File{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return record.File{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return record.File{
		Name:        fh.Filename,
		ContentType: mimetype.Detect(content).String(),
		Content:     content,
	}, nil
}
