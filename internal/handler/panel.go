package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kaiwachat/kaiwa/internal/utils"
)

// GetPanel returns the panel view model: per-attachment cards dispatched by
// kind, selection state and the send gate for the composed message.
func (h *Handler) GetPanel(w http.ResponseWriter, r *http.Request) {
	conversation := chi.URLParam(r, "conversation")

	var body struct {
		Content string `json:"content"`
		Loading bool   `json:"loading"`
	}
	if r.ContentLength > 0 {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	panel := h.registry.Get(conversation).Panel
	writeJSON(w, panel.View(body.Content, body.Loading))
}
