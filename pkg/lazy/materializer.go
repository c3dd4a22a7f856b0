package lazy

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ozkatz/cloudbytes/pkg/remote"
)

// materializer fetches the object behind path at most once and caches the
// outcome forever, including failures.
type materializer struct {
	once    *sync.Once
	ctx     context.Context
	fetcher remote.Fetcher
	path    string

	content []byte
	present bool
}

func newMaterializer(ctx context.Context, fetcher remote.Fetcher, path string) *materializer {
	return &materializer{
		once:    &sync.Once{},
		ctx:     ctx,
		fetcher: fetcher,
		path:    path,
	}
}

func (m *materializer) fetch() {
	if m.path == "" {
		slog.Warn("lazy.fetch", "path", m.path, "error", remote.ErrInvalidURI)
		return
	}
	start := time.Now()
	data, err := m.fetcher.Read(m.ctx, m.path)
	tookMs := time.Since(start).Milliseconds()
	if err != nil {
		slog.Warn("lazy.fetch", "path", m.path, "took_ms", tookMs, "error", err)
		return
	}
	if data == nil {
		data = []byte{}
	}
	slog.Debug("lazy.fetch", "path", m.path, "took_ms", tookMs, "size", len(data))
	m.content = data
	m.present = true
}

// get blocks until the first fetch completes; every caller observes the same result.
func (m *materializer) get() ([]byte, bool) {
	m.once.Do(m.fetch)
	return m.content, m.present
}
