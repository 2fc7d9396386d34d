package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/v1/conversations/{conversation}/attachments", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/v1/conversations/{conversation}/attachments", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})

	t.Run("requests are counted under the route pattern, not the raw path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/abc-123/attachments", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)

		got := testutil.ToFloat64(requestsTotal.WithLabelValues(
			http.MethodGet, "/v1/conversations/{conversation}/attachments", "204"))
		assert.Equal(t, float64(1), got)

		raw := testutil.ToFloat64(requestsTotal.WithLabelValues(
			http.MethodGet, "/v1/conversations/abc-123/attachments", "204"))
		assert.Equal(t, float64(0), raw)
	})

	t.Run("an implicit 200 is recorded when the handler never calls WriteHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/conversations/abc-123/attachments", strings.NewReader("payload"))
		r.ServeHTTP(httptest.NewRecorder(), req)

		got := testutil.ToFloat64(requestsTotal.WithLabelValues(
			http.MethodPost, "/v1/conversations/{conversation}/attachments", "200"))
		assert.Equal(t, float64(1), got)
	})

	t.Run("in-flight gauge settles back to zero", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/abc-123/attachments", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, float64(0), testutil.ToFloat64(inFlight))
	})
}
