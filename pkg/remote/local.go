package remote

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
)

var _ Fetcher = &LocalFetcher{}

// LocalFetcher reads objects from the local filesystem. It accepts file:// and
// local:// URIs as well as bare paths.
type LocalFetcher struct{}

func NewLocalFetcher() *LocalFetcher {
	return &LocalFetcher{}
}

func (l *LocalFetcher) Read(_ context.Context, uri string) ([]byte, error) {
	filePath, err := localParseUri(uri)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDoesNotExist, filePath)
	} else if err != nil {
		return nil, err
	}
	slog.Debug("local.Read", "path", filePath, "size", len(data))
	return data, nil
}

func localParseUri(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	p := path.Join(parsed.Host, parsed.Path)
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidURI)
	}
	return path.Clean(p), nil
}
