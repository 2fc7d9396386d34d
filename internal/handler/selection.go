package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaiwachat/kaiwa/internal/utils"
)

type selectionJson struct {
	Active bool     `json:"active"`
	Ids    []string `json:"ids"`
	Count  int      `json:"count"`
}

func selectionState(c interface {
	Active() bool
	Ids() []string
	Count() int
}) selectionJson {
	return selectionJson{Active: c.Active(), Ids: c.Ids(), Count: c.Count()}
}

// ToggleSelectionMode flips selection mode; the selection set is cleared on
// every toggle, so leaving selection mode always yields an empty set.
func (h *Handler) ToggleSelectionMode(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	sel := h.registry.Get(conversation).Selection
	sel.ToggleMode()
	writeJSON(w, selectionState(sel))
}

// ToggleSelection adds or removes one id from the selection set.
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	id := chi.URLParam(r, "id")
	sel := h.registry.Get(conversation).Selection
	sel.Toggle(id)
	writeJSON(w, selectionState(sel))
}

// SelectAll selects every attachment currently in the store.
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	conv := h.registry.Get(conversation)
	conv.Selection.SelectAll(conv.Store.Ids())
	writeJSON(w, selectionState(conv.Selection))
}

// ClearSelection empties the selection set.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")
	sel := h.registry.Get(conversation).Selection
	sel.Clear()
	writeJSON(w, selectionState(sel))
}

// DeleteSelected batch-deletes the selected attachments, then clears the
// selection and leaves selection mode.
func (h *Handler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
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

	h.registry.Get(conversation).Panel.DeleteSelected(r.Context(), h.limitOrDefault(body.Limit))
	writeJSON(w, h.snapshot(conversation))
}
