package handler

import "net/http"

// Health is the liveness probe; it always succeeds.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready reports readiness; when the metadata index is enabled it must be
// reachable.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(); err != nil {
			http.Error(w, "metadata index unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
