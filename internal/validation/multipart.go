package validation

import (
	"fmt"
	"net/http"
)

// ValidateAndParseMultipart validates request size and parses the multipart
// form. MaxBytesReader is the security boundary: when its limit is exceeded
// the server stops reading, which surfaces to browsers as a connection
// reset. That is acceptable; client-side checks catch legitimate users
// before the upload starts, and the reader never buffers past the limit.
func ValidateAndParseMultipart(r *http.Request, w http.ResponseWriter, maxSize int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
	}

	return nil
}

// CalculateMaxRequestSize returns the maximum request size including an
// overhead buffer (typically 1 MiB) for form fields and multipart framing.
func CalculateMaxRequestSize(maxAttachmentSize int64, bufferSize int64) int64 {
	return maxAttachmentSize + bufferSize
}

// FormatSizeMB converts bytes to megabytes for user-facing error messages.
func FormatSizeMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
