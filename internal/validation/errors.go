package validation

import "errors"

// ErrPayloadTooLarge is returned when the request body exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when a file has a MIME type outside the accepted set
var ErrInvalidMimeType = errors.New("unsupported file type")

// ErrFileTooLarge is returned when a single file exceeds the per-file size limit
var ErrFileTooLarge = errors.New("file too large")

// ErrTooManyAttachments is returned when a file would exceed the attachment count limit
var ErrTooManyAttachments = errors.New("too many files")
