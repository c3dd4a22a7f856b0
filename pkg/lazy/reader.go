// Package lazy adapts a whole-object remote read into a seekable, byte-addressable
// reader. The object is fetched on first use, exactly once per Reader, and kept in
// memory for the lifetime of the Reader. A failed fetch is cached too: every later
// Read or Seek returns ErrSourceUnavailable and Bytes reports no data.
//
// The fetch is safe to trigger from several goroutines at once. The read position
// is not: callers sharing a Reader across goroutines must serialize Read and Seek
// themselves.
package lazy

import (
	"context"
	"io"

	"github.com/ozkatz/cloudbytes/pkg/remote"
)

// Viewer exposes the whole materialized object without copying.
type Viewer interface {
	Bytes() ([]byte, bool)
}

var (
	_ io.ReadSeeker = &Reader{}
	_ Viewer        = &Reader{}
)

type Reader struct {
	path    string
	content *materializer
	cursor  buffer
}

// NewReader returns a Reader for path. Nothing is fetched until the first call to
// Read, Seek, Bytes or Materialize; ctx is handed to the fetcher at that point.
func NewReader(ctx context.Context, fetcher remote.Fetcher, path string) *Reader {
	return &Reader{
		path:    path,
		content: newMaterializer(ctx, fetcher, path),
	}
}

func (r *Reader) Path() string {
	return r.path
}

// Materialize forces the fetch and reports whether content is available.
func (r *Reader) Materialize() bool {
	_, ok := r.content.get()
	return ok
}

// Bytes returns the entire object. The slice is shared with the Reader and must
// not be modified.
func (r *Reader) Bytes() ([]byte, bool) {
	data, ok := r.content.get()
	if !ok {
		return nil, false
	}
	return data, true
}

func (r *Reader) Read(p []byte) (int, error) {
	data, ok := r.content.get()
	if !ok {
		return 0, ErrSourceUnavailable
	}
	return r.cursor.read(data, p)
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	data, ok := r.content.get()
	if !ok {
		return 0, ErrSourceUnavailable
	}
	return r.cursor.seek(data, offset, whence)
}
