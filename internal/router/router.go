package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaiwachat/kaiwa/internal/middleware/metrics"
	"github.com/kaiwachat/kaiwa/internal/setup"
)

// New creates and configures the attachment API router.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	// CORS for the chat client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/conversations/{conversation}", func(r chi.Router) {
		r.Delete("/", h.ResetConversation)

		r.Route("/attachments", func(r chi.Router) {
			r.Post("/", h.UploadAttachments)
			r.Get("/", h.GetAttachments)
			r.Post("/check", h.CheckAttachments)
			r.Post("/batch_delete", h.BatchDeleteAttachments)
			r.Get("/records", h.ListIndexedAttachments)
			r.Delete("/{id}", h.DeleteAttachment)
		})

		r.Route("/selection", func(r chi.Router) {
			r.Post("/mode", h.ToggleSelectionMode)
			r.Post("/select_all", h.SelectAll)
			r.Post("/clear", h.ClearSelection)
			r.Post("/delete", h.DeleteSelected)
			r.Post("/{id}", h.ToggleSelection)
		})

		r.Post("/panel", h.GetPanel)
	})

	return r
}

// NewBridge creates the conversion bridge router. The bridge writes its own
// response headers (JSON content type + permissive CORS on every outcome),
// so the router only adds the preflight answer and recovery.
func NewBridge(convert http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Options("/convert", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/convert", convert)

	return r
}
