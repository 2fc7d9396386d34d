package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kaiwachat/kaiwa/internal/domain"
	"github.com/kaiwachat/kaiwa/internal/validation"
)

// Store tracks every attachment of one conversation context and owns the
// per-entry lifecycle: Uploading -> Healthy|Errored, Healthy|Errored ->
// Deleting -> removed. All mutation happens under one mutex and readers only
// ever get copies, so an attachment is never observed half-updated.
//
// Admission rejections become settled errored entries so their messages stay
// visible inline until the user removes them; they never occupy a slot
// against the file-count limit and are removed locally without a remote call.
type Store struct {
	conversation string
	blob         BlobStore
	index        MetadataIndex // nil disables the durable metadata index

	mu      sync.Mutex
	entries []*entry
	wg      sync.WaitGroup
}

type entry struct {
	id        domain.AttachmentId
	name      string
	kind      domain.FileKind
	sizeBytes int64
	mimeType  string

	remoteKey string
	encoded   string
	imgWidth  *int
	imgHeight *int

	phase domain.Phase

	// permanent holds the admission rejection or upload failure message.
	// It never clears: a file that was never stored remotely must not
	// become healthy when limits change.
	permanent []string
	// limitErrs are recomputed against the current limit spec by Check.
	limitErrs []string

	// queuedDelete is set when a delete arrives while the upload is still
	// in flight; the upload goroutine applies it once the upload settles.
	queuedDelete *domain.LimitSpec
}

func (e *entry) errors() []string {
	if len(e.permanent) == 0 && len(e.limitErrs) == 0 {
		return nil
	}
	out := make([]string, 0, len(e.permanent)+len(e.limitErrs))
	out = append(out, e.permanent...)
	return append(out, e.limitErrs...)
}

// counted reports whether the entry occupies a slot against MaxFileCount.
// Entries leaving the store or carrying permanent errors do not.
func (e *entry) counted() bool {
	return e.phase != domain.PhaseDeleting && len(e.permanent) == 0
}

func (e *entry) snapshot() domain.Attachment {
	return domain.Attachment{
		Id:             e.id,
		Name:           e.name,
		Kind:           e.kind,
		SizeBytes:      e.sizeBytes,
		MimeType:       e.mimeType,
		RemoteKey:      e.remoteKey,
		EncodedContent: e.encoded,
		ImageWidth:     e.imgWidth,
		ImageHeight:    e.imgHeight,
		Phase:          e.phase,
		Errors:         e.errors(),
	}
}

func NewStore(conversation string, blob BlobStore, index MetadataIndex) *Store {
	return &Store{conversation: conversation, blob: blob, index: index}
}

// Upload admits the candidate files and starts one independent upload per
// accepted file. It returns as soon as every entry exists: accepted entries
// in the uploading phase, rejected ones settled with their rejection reason.
// Completion order of the uploads is unspecified.
func (s *Store) Upload(ctx context.Context, files []*domain.PendingFile, limit domain.LimitSpec) {
	s.mu.Lock()

	current := 0
	for _, e := range s.entries {
		if e.counted() {
			current++
		}
	}

	accepted, rejected := validation.Admit(files, limit, current)

	type launch struct {
		id   domain.AttachmentId
		file *domain.PendingFile
	}
	var launches []launch

	for _, f := range accepted {
		e := &entry{
			id:        uuid.NewString(),
			name:      f.Name,
			kind:      domain.KindForMime(f.MimeType),
			sizeBytes: f.SizeBytes(),
			mimeType:  f.MimeType,
			phase:     domain.PhaseUploading,
		}
		s.entries = append(s.entries, e)
		launches = append(launches, launch{e.id, f})
	}

	for _, rej := range rejected {
		s.entries = append(s.entries, &entry{
			id:        uuid.NewString(),
			name:      rej.File.Name,
			kind:      domain.KindForMime(rej.File.MimeType),
			sizeBytes: rej.File.SizeBytes(),
			mimeType:  rej.File.MimeType,
			phase:     domain.PhaseErrored,
			permanent: []string{rej.Reason.Error()},
		})
		uploadsTotal.WithLabelValues("rejected").Inc()
	}
	s.mu.Unlock()

	// Detach from the request context: the caller's response returns while
	// uploads are still in flight.
	uploadCtx := context.WithoutCancel(ctx)
	for _, l := range launches {
		s.wg.Add(1)
		go s.performUpload(uploadCtx, l.id, l.file, limit)
	}
}

func (s *Store) performUpload(ctx context.Context, id domain.AttachmentId, file *domain.PendingFile, limit domain.LimitSpec) {
	defer s.wg.Done()

	encoded := fmt.Sprintf("data:%s;base64,%s", file.MimeType, base64.StdEncoding.EncodeToString(file.Data))
	width, height := validation.ExtractImageDimensions(file.Data, file.MimeType)

	key, err := s.blob.PutObject(ctx, s.conversation, file.Name, bytes.NewReader(file.Data))

	s.mu.Lock()
	e := s.find(id)
	if e == nil {
		// Entry vanished (conversation reset); nothing left to settle.
		s.mu.Unlock()
		return
	}

	e.encoded = encoded
	e.imgWidth, e.imgHeight = width, height

	if err != nil {
		e.phase = domain.PhaseErrored
		e.permanent = append(e.permanent, fmt.Sprintf("upload failed: %s (file: %s)", err, file.Name))
		uploadsTotal.WithLabelValues("failure").Inc()
		slog.Warn("attachment upload failed", "conversation", s.conversation, "file", file.Name, "err", err)
	} else {
		e.remoteKey = key
		e.phase = domain.PhaseHealthy
		uploadsTotal.WithLabelValues("success").Inc()
	}

	queued := e.queuedDelete
	e.queuedDelete = nil
	rec := AttachmentRecord{
		Conversation: s.conversation,
		Id:           e.id,
		RemoteKey:    e.remoteKey,
		Name:         e.name,
		MimeType:     e.mimeType,
		SizeBytes:    e.sizeBytes,
	}
	s.mu.Unlock()

	if err == nil && s.index != nil {
		if ierr := s.index.SaveAttachment(ctx, rec); ierr != nil {
			slog.Warn("failed to index attachment metadata", "conversation", s.conversation, "id", id, "err", ierr)
		}
	}

	if queued != nil {
		s.Delete(ctx, id, *queued)
	}
}

// Delete removes one attachment. An absent id is a no-op. A delete issued
// while the entry's upload is still in flight is queued and applied by the
// upload goroutine once the upload settles; the upload is never pre-empted.
// The local entry is removed whether or not the remote delete succeeds, and
// the remaining entries are re-checked so error text reflects the freed slot.
func (s *Store) Delete(ctx context.Context, id domain.AttachmentId, limit domain.LimitSpec) {
	s.mu.Lock()
	e := s.find(id)
	if e == nil {
		s.mu.Unlock()
		return
	}

	switch e.phase {
	case domain.PhaseUploading:
		l := limit
		e.queuedDelete = &l
		s.mu.Unlock()
		return
	case domain.PhaseDeleting:
		s.mu.Unlock()
		return
	}

	e.phase = domain.PhaseDeleting
	key := e.remoteKey
	s.mu.Unlock()

	// Entries that never reached the blob store are local-removal only.
	if key != "" {
		if err := s.blob.DeleteObject(ctx, key); err != nil {
			deletesTotal.WithLabelValues("remote_failure").Inc()
			slog.Warn("remote delete failed, removing local entry anyway", "conversation", s.conversation, "id", id, "err", err)
		} else {
			deletesTotal.WithLabelValues("success").Inc()
		}
		if s.index != nil {
			if err := s.index.DeleteAttachment(ctx, s.conversation, id); err != nil {
				slog.Warn("failed to remove attachment metadata", "conversation", s.conversation, "id", id, "err", err)
			}
		}
	} else {
		deletesTotal.WithLabelValues("local").Inc()
	}

	s.mu.Lock()
	s.remove(id)
	s.recheckLocked(limit)
	s.mu.Unlock()
}

// DeleteMany applies Delete sequentially over the given ids, best effort:
// an individual failure (or a stale id) never aborts the rest of the batch.
// Ids whose uploads are still in flight settle via the queued-delete path.
func (s *Store) DeleteMany(ctx context.Context, ids []domain.AttachmentId, limit domain.LimitSpec) {
	for _, id := range ids {
		s.Delete(ctx, id, limit)
	}
}

// Check recomputes the limit-derived error messages of every current entry
// against the given spec. Lifecycle phases of in-flight entries are never
// touched; only settled entries flip between healthy and errored.
func (s *Store) Check(limit domain.LimitSpec) {
	s.mu.Lock()
	s.recheckLocked(limit)
	s.mu.Unlock()
}

func (s *Store) recheckLocked(limit domain.LimitSpec) {
	stored := make([]validation.StoredFile, len(s.entries))
	for i, e := range s.entries {
		stored[i] = validation.StoredFile{
			Name:      e.name,
			MimeType:  e.mimeType,
			SizeBytes: e.sizeBytes,
			Counted:   e.counted(),
		}
	}

	msgs := validation.Check(stored, limit)
	for i, e := range s.entries {
		e.limitErrs = msgs[i]
		switch e.phase {
		case domain.PhaseHealthy, domain.PhaseErrored:
			if len(e.errors()) == 0 {
				e.phase = domain.PhaseHealthy
			} else {
				e.phase = domain.PhaseErrored
			}
		}
	}
}

// Uploading reports whether any entry's upload is still in flight.
func (s *Store) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.phase == domain.PhaseUploading {
			return true
		}
	}
	return false
}

// ErrorMessages concatenates the non-empty per-entry error sequences in
// entry order.
func (s *Store) ErrorMessages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.entries {
		out = append(out, e.errors()...)
	}
	return out
}

// Files returns a consistent snapshot of every entry in order.
func (s *Store) Files() []domain.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Attachment, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.snapshot()
	}
	return out
}

// Ids returns the current entry ids in order.
func (s *Store) Ids() []domain.AttachmentId {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AttachmentId, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.id
	}
	return out
}

// Len returns the number of entries currently tracked.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Wait blocks until every in-flight upload (and any delete it queued) has
// settled. Used on conversation teardown and in tests.
func (s *Store) Wait() {
	s.wg.Wait()
}

// clear drops every entry without remote calls; used on conversation reset.
func (s *Store) clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

func (s *Store) find(id domain.AttachmentId) *entry {
	for _, e := range s.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (s *Store) remove(id domain.AttachmentId) {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}
