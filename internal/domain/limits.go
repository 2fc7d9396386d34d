package domain

// LimitSpec describes the admission limits for one conversation context,
// typically derived from the currently selected model. It is immutable and
// supplied by the caller on every operation that (re)validates files.
type LimitSpec struct {
	MaxFileCount     int   `json:"maxFileCount" yaml:"max_file_count"`
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes" yaml:"max_file_size_bytes"`

	// AcceptedKinds lists accepted file patterns the way an HTML accept
	// attribute does: exact MIME types ("image/png"), wildcard MIME types
	// ("image/*") or extensions (".pdf").
	AcceptedKinds []string `json:"acceptedKinds" yaml:"accepted_kinds"`
}

// PendingFile is a candidate file presented for admission, with its
// content already read from the client request.
type PendingFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// SizeBytes returns the candidate's content size.
func (f *PendingFile) SizeBytes() int64 { return int64(len(f.Data)) }
