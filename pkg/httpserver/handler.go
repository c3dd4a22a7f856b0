// Package httpserver serves remote objects over HTTP. Every request materializes
// its object once and answers from memory, so Range requests never hit the
// remote store again.
package httpserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/ozkatz/cloudbytes/pkg/fs"
	"github.com/ozkatz/cloudbytes/pkg/lazy"
	"github.com/ozkatz/cloudbytes/pkg/remote"
	"github.com/ozkatz/cloudbytes/pkg/zipfile"
)

type Handler struct {
	fetcher remote.Fetcher
	prefix  string
}

// NewHandler maps a request for /some/key to the object prefix + "/some/key".
// Request paths are cleaned first, so ".." never climbs above the prefix.
func NewHandler(fetcher remote.Fetcher, prefix string) *Handler {
	return &Handler{
		fetcher: fetcher,
		prefix:  strings.TrimSuffix(prefix, "/"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	objectPath := path.Clean("/" + r.URL.Path)
	if objectPath == "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	uri := h.prefix + objectPath
	internalPath := r.URL.Query().Get("filename")
	slog.Debug("HTTP Handler", "objectPath", objectPath, "uri", uri, "internalPath", internalPath)

	reader := lazy.NewReader(r.Context(), h.fetcher, uri)
	if !reader.Materialize() {
		slog.Warn("object unavailable", "uri", uri)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if internalPath != "" {
		h.serveZipEntry(w, reader, internalPath)
		return
	}
	f := fs.NewFile(reader)
	defer func() {
		_ = f.Close()
	}()
	http.ServeContent(w, r, f.Name(), time.Time{}, f)
}

func (h *Handler) serveZipEntry(w http.ResponseWriter, reader *lazy.Reader, internalPath string) {
	rc, err := zipfile.NewZipReader(reader).Open(internalPath)
	if errors.Is(err, zipfile.ErrFileNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		slog.Warn("Error reading zip file", "uri", reader.Path(), "error", err)
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	defer func() {
		_ = rc.Close()
	}()
	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Error copying zip entry", "uri", reader.Path(), "filename", internalPath, "error", err)
	}
}
