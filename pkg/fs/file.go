package fs

import (
	"io"
	"os"
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"

	"github.com/ozkatz/cloudbytes/pkg/lazy"
)

var _ billy.File = &File{}

// File is a read-only billy.File over a lazily materialized object.
type File struct {
	r *lazy.Reader

	lock   sync.Mutex
	closed bool
}

func NewFile(r *lazy.Reader) *File {
	return &File{r: r}
}

func (f *File) Name() string {
	return path.Base(f.r.Path())
}

func (f *File) Write(p []byte) (n int, err error) {
	return n, billy.ErrReadOnly
}

func (f *File) Read(p []byte) (n int, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.closed {
		return 0, os.ErrClosed
	}
	return f.r.Read(p)
}

// ReadAt reads from the materialized bytes without moving the read position.
func (f *File) ReadAt(p []byte, off int64) (n int, err error) {
	f.lock.Lock()
	closed := f.closed
	f.lock.Unlock()
	if closed {
		return 0, os.ErrClosed
	}
	if off < 0 {
		return 0, lazy.ErrNegativePosition
	}
	data, ok := f.r.Bytes()
	if !ok {
		return 0, lazy.ErrSourceUnavailable
	}
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n = copy(p, data[off:])
	if n < len(p) {
		err = io.EOF
	}
	return n, err
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.closed {
		return 0, os.ErrClosed
	}
	return f.r.Seek(offset, whence)
}

func (f *File) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true
	return nil
}

func (f *File) Lock() error {
	return billy.ErrNotSupported
}

func (f *File) Unlock() error {
	return billy.ErrNotSupported
}

func (f *File) Truncate(size int64) error {
	return billy.ErrReadOnly
}
