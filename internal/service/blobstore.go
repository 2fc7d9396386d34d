package service

import (
	"context"
	"io"
)

// BlobStore is the remote object store attachments are uploaded to.
// Implementations are opaque async operations with success/failure
// outcomes only; retry policy is theirs, not the store's.
type BlobStore interface {
	// PutObject stores a file's content and returns the assigned key.
	PutObject(ctx context.Context, conversation, filename string, data io.Reader) (string, error)

	// DeleteObject removes a stored object by key.
	DeleteObject(ctx context.Context, key string) error
}

// AttachmentRecord is the durable metadata written for a settled upload.
type AttachmentRecord struct {
	Conversation string `json:"conversation"`
	Id           string `json:"id"`
	RemoteKey    string `json:"remoteKey"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// MetadataIndex persists attachment metadata alongside the blob store so
// other services (e.g. the conversion caller) can locate uploaded objects.
// A nil index disables indexing.
type MetadataIndex interface {
	SaveAttachment(ctx context.Context, rec AttachmentRecord) error
	DeleteAttachment(ctx context.Context, conversation, id string) error
	DeleteConversation(ctx context.Context, conversation string) error
}
