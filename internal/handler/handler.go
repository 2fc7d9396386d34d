package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kaiwachat/kaiwa/internal/config"
	"github.com/kaiwachat/kaiwa/internal/domain"
	"github.com/kaiwachat/kaiwa/internal/service"
)

// HealthChecker reports reachability of the metadata index for readiness
// probes. Nil means the index is disabled and readiness is unconditional.
type HealthChecker interface {
	Ping() error
}

// MetadataLister reads the durable attachment index so collaborating
// services can locate stored objects. Nil means the index is disabled.
type MetadataLister interface {
	ListByConversation(ctx context.Context, conversation string) ([]service.AttachmentRecord, error)
}

type Handler struct {
	registry *service.Registry
	cfg      *config.Config
	health   HealthChecker
	lister   MetadataLister
}

func New(registry *service.Registry, cfg *config.Config, health HealthChecker, lister MetadataLister) *Handler {
	return &Handler{registry: registry, cfg: cfg, health: health, lister: lister}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// limitJson is the caller-supplied limit spec; absent fields fall back to
// the configured defaults.
type limitJson struct {
	MaxFileCount     int      `json:"maxFileCount"`
	MaxFileSizeBytes int64    `json:"maxFileSizeBytes"`
	AcceptedKinds    []string `json:"acceptedKinds"`
}

func (h *Handler) limitOrDefault(l *limitJson) domain.LimitSpec {
	spec := h.cfg.DefaultLimit()
	if l == nil {
		return spec
	}
	if l.MaxFileCount > 0 {
		spec.MaxFileCount = l.MaxFileCount
	}
	if l.MaxFileSizeBytes > 0 {
		spec.MaxFileSizeBytes = l.MaxFileSizeBytes
	}
	if len(l.AcceptedKinds) > 0 {
		spec.AcceptedKinds = l.AcceptedKinds
	}
	return spec
}
