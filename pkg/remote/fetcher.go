package remote

import (
	"context"
)

// Fetcher reads a whole object, identified by path, into memory.
type Fetcher interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

func (f FetcherFunc) Read(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}
