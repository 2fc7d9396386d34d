package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kaiwachat/kaiwa/internal/domain"
)

// Rejection pairs a rejected candidate with the reason it was turned away.
// The reason wraps one of the sentinel errors in errors.go.
type Rejection struct {
	File   *domain.PendingFile
	Reason error
}

// Admit decides which of the candidate files may enter the store.
// currentCount is the number of entries already counted against the limit
// (uploading or healthy; errored entries do not occupy a slot).
//
// Candidates are checked in presentation order: type and size first, then
// remaining capacity, so the first files presented win the free slots.
func Admit(candidates []*domain.PendingFile, limit domain.LimitSpec, currentCount int) (accepted []*domain.PendingFile, rejected []Rejection) {
	free := limit.MaxFileCount - currentCount

	for _, f := range candidates {
		if !Accepted(f.Name, f.MimeType, limit.AcceptedKinds) {
			rejected = append(rejected, Rejection{f, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, f.MimeType, f.Name)})
			continue
		}
		if f.SizeBytes() > limit.MaxFileSizeBytes {
			rejected = append(rejected, Rejection{f, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, f.Name, limit.MaxFileSizeBytes)})
			continue
		}
		if free <= 0 {
			rejected = append(rejected, Rejection{f, fmt.Errorf("%w: at most %d allowed", ErrTooManyAttachments, limit.MaxFileCount)})
			continue
		}
		free--
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

// StoredFile is the subset of an attachment entry Check needs. Entries are
// re-validated without touching their lifecycle phase.
type StoredFile struct {
	Name      string
	MimeType  string
	SizeBytes int64

	// Counted marks entries that occupy a slot against MaxFileCount.
	// Entries with permanent errors (rejected or failed uploads) do not.
	Counted bool
}

// Check re-applies the admission predicate to already-stored entries and
// returns the limit-derived error messages per entry, in entry order.
// It is used to recompute error text when the limit spec changes (for
// example after switching the target model) without re-uploading anything.
func Check(files []StoredFile, limit domain.LimitSpec) [][]string {
	out := make([][]string, len(files))
	seen := 0
	for i, f := range files {
		var msgs []string
		if !Accepted(f.Name, f.MimeType, limit.AcceptedKinds) {
			msgs = append(msgs, fmt.Sprintf("%s: %s (file: %s)", ErrInvalidMimeType, f.MimeType, f.Name))
		}
		if f.SizeBytes > limit.MaxFileSizeBytes {
			msgs = append(msgs, fmt.Sprintf("%s: %s exceeds %d bytes", ErrFileTooLarge, f.Name, limit.MaxFileSizeBytes))
		}
		if f.Counted {
			seen++
			if seen > limit.MaxFileCount {
				msgs = append(msgs, fmt.Sprintf("%s: at most %d allowed", ErrTooManyAttachments, limit.MaxFileCount))
			}
		}
		out[i] = msgs
	}
	return out
}

// Accepted reports whether a file matches any of the accept patterns.
// Patterns follow the HTML accept attribute: exact MIME ("image/png"),
// wildcard MIME ("image/*") or extension (".pdf").
func Accepted(filename, mimeType string, patterns []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType = strings.ToLower(mimeType)

	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "":
			continue
		case strings.HasPrefix(p, "."):
			if p == ext {
				return true
			}
		case strings.HasSuffix(p, "/*"):
			if strings.HasPrefix(mimeType, strings.TrimSuffix(p, "*")) {
				return true
			}
		default:
			if p == mimeType {
				return true
			}
		}
	}
	return false
}
