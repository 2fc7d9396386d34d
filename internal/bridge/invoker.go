package bridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPInvoker calls the conversion service over HTTP: one POST with the
// request payload, the raw response body back. No retry layer; timeout
// behavior is whatever the supplied client enforces.
type HTTPInvoker struct {
	url    string
	client *http.Client
}

func NewHTTPInvoker(url string, client *http.Client) *HTTPInvoker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPInvoker{url: url, client: client}
}

var _ Invoker = (*HTTPInvoker)(nil)

func (i *HTTPInvoker) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build converter request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("converter unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read converter response: %w", err)
	}

	return body, nil
}
