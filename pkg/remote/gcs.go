package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/storage"
)

var _ Fetcher = &GCSFetcher{}

type GCSFetcher struct {
	lock   *sync.Mutex
	client *storage.Client
}

// NewGCSFetcher reads gs://bucket/object URIs. With a nil client, one is created
// from application default credentials on first use.
func NewGCSFetcher(client *storage.Client) *GCSFetcher {
	return &GCSFetcher{
		lock:   &sync.Mutex{},
		client: client,
	}
}

func (g *GCSFetcher) getClient(ctx context.Context) (*storage.Client, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}

func (g *GCSFetcher) Read(ctx context.Context, uri string) ([]byte, error) {
	parsed, err := parseBucketUri(uri)
	if err != nil {
		return nil, err
	}
	client, err := g.getClient(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rc, err := client.Bucket(parsed.Bucket).Object(parsed.Key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		slog.Warn("gcs.NewReader", "uri", uri, "took_ms", time.Since(start).Milliseconds(), "error", "NotFound")
		return nil, fmt.Errorf("%w: %s", ErrDoesNotExist, uri)
	} else if err != nil {
		slog.Error("gcs.NewReader", "uri", uri, "took_ms", time.Since(start).Milliseconds(), "error", err)
		return nil, err
	}
	defer func() {
		_ = rc.Close()
	}()
	data, err := io.ReadAll(rc)
	slog.Debug("gcs.NewReader", "uri", uri, "took_ms", time.Since(start).Milliseconds(), "size", len(data), "error", err)
	if err != nil {
		return nil, err
	}
	return data, nil
}
