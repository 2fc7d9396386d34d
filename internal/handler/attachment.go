package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kaiwachat/kaiwa/internal/domain"
	"github.com/kaiwachat/kaiwa/internal/service"
	"github.com/kaiwachat/kaiwa/internal/utils"
	"github.com/kaiwachat/kaiwa/internal/validation"
)

type snapshotJson struct {
	Files         []domain.Attachment `json:"files"`
	Uploading     bool                `json:"uploading"`
	ErrorMessages []string            `json:"errorMessages"`
}

func (h *Handler) snapshot(conversation string) snapshotJson {
	store := h.registry.Get(conversation).Store
	return snapshotJson{
		Files:         store.Files(),
		Uploading:     store.Uploading(),
		ErrorMessages: store.ErrorMessages(),
	}
}

// UploadAttachments accepts a multipart form with an optional "json" field
// carrying the limit spec and the candidate files under "attachments".
// Accepted files start uploading concurrently; the response is an immediate
// snapshot with those entries still in the uploading phase.
func (h *Handler) UploadAttachments(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")

	maxRequestSize := validation.CalculateMaxRequestSize(h.cfg.Public.MaxTotalAttachmentSize, 1<<20)
	if err := validation.ValidateAndParseMultipart(r, w, maxRequestSize); err != nil {
		maxSizeMB := validation.FormatSizeMB(h.cfg.Public.MaxTotalAttachmentSize)
		http.Error(w, fmt.Sprintf("total attachment size exceeds the limit of %.0f MB", maxSizeMB), http.StatusRequestEntityTooLarge)
		return
	}

	var limit *limitJson
	if jsonPayload := r.FormValue("json"); jsonPayload != "" {
		var body struct {
			Limit *limitJson `json:"limit"`
		}
		if err := utils.Decode(strings.NewReader(jsonPayload), &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		limit = body.Limit
	}

	files, err := validation.ReadMultipartFiles(r.MultipartForm.File["attachments"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, f := range files {
		f.Name = utils.SanitizeFilename(f.Name)
	}

	h.registry.Get(conversation).Store.Upload(r.Context(), files, h.limitOrDefault(limit))

	writeJSONStatus(w, http.StatusAccepted, h.snapshot(conversation))
}

// GetAttachments returns the conversation's attachment snapshot.
func (h *Handler) GetAttachments(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	writeJSON(w, h.snapshot(conversation))
}

// CheckAttachments re-validates every entry against a (possibly changed)
// limit spec, e.g. after switching the target model.
func (h *Handler) CheckAttachments(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")

	var body struct {
		Limit *limitJson `json:"limit"`
	}
	if r.ContentLength > 0 {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	h.registry.Get(conversation).Store.Check(h.limitOrDefault(body.Limit))
	writeJSON(w, h.snapshot(conversation))
}

// DeleteAttachment removes one entry. Deleting an id that is not present
// is a no-op, not an error.
func (h *Handler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	id := chi.URLParam(r, "id")

	var body struct {
		Limit *limitJson `json:"limit"`
	}
	if r.ContentLength > 0 {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	h.registry.Get(conversation).Store.Delete(r.Context(), id, h.limitOrDefault(body.Limit))
	writeJSON(w, h.snapshot(conversation))
}

// BatchDeleteAttachments removes the given entries sequentially, best
// effort; stale ids are skipped.
func (h *Handler) BatchDeleteAttachments(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")

	var body struct {
		Ids   []string   `json:"ids" validate:"required"`
		Limit *limitJson `json:"limit"`
	}
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.registry.Get(conversation).Store.DeleteMany(r.Context(), body.Ids, h.limitOrDefault(body.Limit))
	writeJSON(w, h.snapshot(conversation))
}

// ListIndexedAttachments returns the durable index records for the
// conversation, so collaborating services can locate the stored objects.
func (h *Handler) ListIndexedAttachments(w http.ResponseWriter, r *http.Request) {
	if h.lister == nil {
		http.Error(w, "metadata index is disabled", http.StatusNotFound)
		return
	}

	conversation := chi.URLParam(r, "conversation")
	recs, err := h.lister.ListByConversation(r.Context(), conversation)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if recs == nil {
		recs = []service.AttachmentRecord{}
	}
	writeJSON(w, recs)
}

// ResetConversation tears down the conversation's attachment context.
func (h *Handler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	h.registry.Reset(r.Context(), conversation)
	w.WriteHeader(http.StatusOK)
}
