package remote

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIdHeader = "X-Request-Id"

var _ Fetcher = &HttpFetcher{}

type HttpFetcher struct {
	client *http.Client
}

// NewHttpFetcher returns a fetcher for http(s) URLs. A nil client means http.DefaultClient.
func NewHttpFetcher(client *http.Client) *HttpFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HttpFetcher{client: client}
}

func (h *HttpFetcher) Read(ctx context.Context, uri string) ([]byte, error) {
	return httpGet(ctx, h.client, "http.Get", uri, nil)
}

func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

func httpGet(ctx context.Context, client *http.Client, op, uri string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	requestId := uuid.Must(uuid.NewV7()).String()
	req.Header.Set(requestIdHeader, requestId)

	start := time.Now()
	response, err := client.Do(req)
	tookMs := time.Since(start).Milliseconds()
	if err != nil {
		slog.Error(op, "url", uri, "request_id", requestId, "took_ms", tookMs, "error", err)
		return nil, err
	}
	defer func() {
		_ = response.Body.Close()
	}()
	if response.StatusCode == http.StatusNotFound {
		slog.Warn(op, "url", uri, "request_id", requestId, "took_ms", tookMs, "error", "NotFound")
		return nil, fmt.Errorf("%w: %s", ErrDoesNotExist, uri)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		slog.Warn(op, "url", uri, "request_id", requestId, "took_ms", tookMs, "status", response.StatusCode)
		return nil, fmt.Errorf("%w: got HTTP %d", ErrUnexpectedStatus, response.StatusCode)
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		slog.Error(op, "url", uri, "request_id", requestId, "took_ms", tookMs, "error", err)
		return nil, err
	}
	slog.Debug(op, "url", uri, "request_id", requestId, "took_ms", tookMs, "size", len(data))
	return data, nil
}
