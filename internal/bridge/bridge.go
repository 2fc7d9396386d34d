// Package bridge accepts slide-deck conversion requests and forwards them
// synchronously to the dedicated conversion service, translating its reply
// (or its absence) into an HTTP-style result. One hop, one translation step,
// no retries; timeouts are the transport's business.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ConvertRequest describes an already-uploaded document to convert.
// All three fields are required, no defaults.
type ConvertRequest struct {
	BucketName string `json:"bucketName" validate:"required"`
	FileKey    string `json:"fileKey" validate:"required"`
	FileName   string `json:"fileName" validate:"required"`
}

// ConvertResponse is the conversion service's reply: an HTTP-style status
// code and a pre-serialized body, passed through to the caller verbatim.
type ConvertResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Invoker performs one synchronous request/response invocation of the
// conversion service with an opaque JSON payload.
type Invoker interface {
	Invoke(ctx context.Context, payload []byte) ([]byte, error)
}

// convertErrMessage is the fixed string returned on upstream or unexpected
// failure; the raw failure detail rides along in "details".
const convertErrMessage = "PowerPointの変換中にエラーが発生しました"

type Handler struct {
	invoker  Invoker
	validate *validator.Validate
}

func NewHandler(invoker Invoker) *Handler {
	return &Handler{
		invoker:  invoker,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Convert handles POST /convert.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read request body", "err", err)
		writeError(w, http.StatusInternalServerError, convertErrMessage, err.Error())
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "Request body is required", "")
		return
	}

	var req ConvertRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is required", "")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bucketName, fileKey, and fileName are required", "")
		return
	}

	slog.Info("invoking converter", "bucketName", req.BucketName, "fileKey", req.FileKey, "fileName", req.FileName)

	payload, err := json.Marshal(&req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, convertErrMessage, err.Error())
		return
	}

	respPayload, err := h.invoker.Invoke(r.Context(), payload)
	if err != nil {
		slog.Error("converter invocation failed", "err", err)
		writeError(w, http.StatusInternalServerError, convertErrMessage, err.Error())
		return
	}
	if len(respPayload) == 0 {
		slog.Error("converter returned no payload")
		writeError(w, http.StatusInternalServerError, convertErrMessage, ErrNoResponse.Error())
		return
	}

	var resp ConvertResponse
	if err := json.Unmarshal(respPayload, &resp); err != nil {
		slog.Error("malformed converter payload", "err", err)
		writeError(w, http.StatusInternalServerError, convertErrMessage, err.Error())
		return
	}

	// Pass the converter's verdict through unchanged; the bridge does not
	// reinterpret its status semantics.
	writeHeaders(w)
	w.WriteHeader(resp.StatusCode)
	w.Write([]byte(resp.Body))
}

// ErrNoResponse marks an upstream invocation that produced no payload.
var ErrNoResponse = errors.New("no response from converter")

// writeHeaders attaches the JSON content type and permissive cross-origin
// headers every response carries, regardless of outcome.
func writeHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeHeaders(w)
	w.WriteHeader(status)

	body := map[string]string{"error": message}
	if details != "" {
		body["details"] = details
	}
	json.NewEncoder(w).Encode(body)
}
