package zipfile

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"log/slog"

	"github.com/ozkatz/cloudbytes/pkg/lazy"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

// ZipReader reads a zip archive out of a materialized object.
type ZipReader struct {
	v lazy.Viewer
}

func NewZipReader(v lazy.Viewer) *ZipReader {
	return &ZipReader{v: v}
}

func (zr *ZipReader) open() (*zip.Reader, error) {
	data, ok := zr.v.Bytes()
	if !ok {
		return nil, lazy.ErrSourceUnavailable
	}
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		slog.Error("unable to open zip reader", "error", err)
		return nil, err
	}
	return reader, nil
}

func (zr *ZipReader) ListFiles() ([]*zip.File, error) {
	reader, err := zr.open()
	if err != nil {
		return nil, err
	}
	return reader.File, nil
}

// Open returns a reader for the archive entry named filePath.
func (zr *ZipReader) Open(filePath string) (io.ReadCloser, error) {
	reader, err := zr.open()
	if err != nil {
		return nil, err
	}
	for _, f := range reader.File {
		if f.Name != filePath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			slog.Error("unable to open file in archive", "name", f.Name, "method", f.Method, "error", err)
			return nil, err
		}
		return rc, nil
	}
	slog.Error("could not find file", "file_path", filePath)
	return nil, ErrFileNotFound
}

func (zr *ZipReader) CopyFile(filePath string, writer io.Writer) (int64, error) {
	rc, err := zr.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = rc.Close()
	}()
	return io.Copy(writer, rc)
}
