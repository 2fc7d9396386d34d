package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/kaiwachat/kaiwa/internal/domain"
)

// ReadMultipartFiles reads the uploaded files out of a parsed multipart form
// into pending candidates ready for admission. The whole content is buffered
// because the upload pipeline encodes it for preview before storing it.
func ReadMultipartFiles(fileHeaders []*multipart.FileHeader) ([]*domain.PendingFile, error) {
	var pending []*domain.PendingFile

	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
		}

		mimeType, err := DetectMimeType(fh)
		if err != nil {
			return nil, err
		}

		pending = append(pending, &domain.PendingFile{
			Name:     fh.Filename,
			MimeType: mimeType,
			Data:     data,
		})
	}

	return pending, nil
}

// DetectMimeType resolves a file's MIME type from the part header, falling
// back to the filename extension when the header is absent or generic.
func DetectMimeType(fh *multipart.FileHeader) (string, error) {
	mimeType := fh.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(fh.Filename)); detected != "" {
			mimeType = detected
		}
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fh.Filename)
	}

	// Strip parameters like "; charset=utf-8"
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return mimeType, nil
}

// ExtractImageDimensions returns the pixel dimensions of an image file, or
// (nil, nil) for non-images and undecodable data. Failure to decode is not
// fatal; dimensions are advisory metadata.
func ExtractImageDimensions(data []byte, mimeType string) (*int, *int) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}

	width, height := cfg.Width, cfg.Height
	return &width, &height
}
