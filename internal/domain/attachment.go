package domain

// AttachmentId identifies an attachment entry within its store.
// It is assigned locally at admission time, before any upload starts,
// so errored entries that never reached the blob store are still addressable.
type AttachmentId = string

// FileKind classifies an attachment by its MIME type.
type FileKind string

const (
	KindImage    FileKind = "image"
	KindVideo    FileKind = "video"
	KindDocument FileKind = "document"
)

// Phase is the lifecycle phase of an attachment entry.
// Exactly one phase holds at a time, so an entry can never be
// uploading and deleting simultaneously.
type Phase string

const (
	PhaseUploading Phase = "uploading"
	PhaseHealthy   Phase = "healthy"
	PhaseErrored   Phase = "errored"
	PhaseDeleting  Phase = "deleting"
)

// Attachment is a single file entry tracked by the store, independent of
// its backing remote object.
type Attachment struct {
	Id   AttachmentId `json:"id"`
	Name string       `json:"name"`
	Kind FileKind     `json:"kind"`

	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`

	// RemoteKey is the blob store key, set once the upload succeeds.
	// Empty for entries that were rejected or whose upload failed.
	RemoteKey string `json:"remoteKey,omitempty"`

	// EncodedContent is a base64 data URL for inline preview,
	// present once the file content has been read.
	EncodedContent string `json:"encodedContent,omitempty"`

	ImageWidth  *int `json:"imageWidth,omitempty"`
	ImageHeight *int `json:"imageHeight,omitempty"`

	Phase Phase `json:"phase"`

	// Errors holds the entry's current error messages in the order they
	// were produced. Empty means healthy.
	Errors []string `json:"errors,omitempty"`
}

// Uploading reports whether the entry's upload is still in flight.
func (a *Attachment) Uploading() bool { return a.Phase == PhaseUploading }

// Deleting reports whether the entry is being removed.
func (a *Attachment) Deleting() bool { return a.Phase == PhaseDeleting }

// Healthy reports whether the entry settled with no errors.
func (a *Attachment) Healthy() bool { return a.Phase == PhaseHealthy }

// KindForMime maps a MIME type to a FileKind. Anything that is not an
// image or a video is treated as a document.
func KindForMime(mimeType string) FileKind {
	switch {
	case len(mimeType) >= 6 && mimeType[:6] == "image/":
		return KindImage
	case len(mimeType) >= 6 && mimeType[:6] == "video/":
		return KindVideo
	default:
		return KindDocument
	}
}
