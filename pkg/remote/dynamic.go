package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

var _ Fetcher = &DynamicFetcher{}

// DynamicFetcher dispatches to a registered Fetcher by URI scheme. URIs without a
// scheme are treated as local paths.
type DynamicFetcher struct {
	lock               sync.RWMutex
	registeredFetchers map[string]Fetcher
}

type Options struct {
	S3DefaultRegion string
	HTTPClient      *http.Client
}

func NewDynamicFetcher(opts Options) *DynamicFetcher {
	s3Fetcher := NewS3Fetcher(opts.S3DefaultRegion)
	localFetcher := NewLocalFetcher()
	httpFetcher := NewHttpFetcher(opts.HTTPClient)
	return &DynamicFetcher{
		registeredFetchers: map[string]Fetcher{
			"s3":     s3Fetcher,
			"s3a":    s3Fetcher,
			"S3":     s3Fetcher,
			"gs":     NewGCSFetcher(nil),
			"http":   httpFetcher,
			"https":  httpFetcher,
			"lakefs": NewLakeFSFetcher(nil, opts.HTTPClient),
			"kaggle": NewKaggleFetcher("", opts.HTTPClient),
			"local":  localFetcher,
			"file":   localFetcher,
			"":       localFetcher,
		},
	}
}

// Register adds or replaces the fetcher used for scheme. Safe to call while
// reads are in flight.
func (d *DynamicFetcher) Register(scheme string, f Fetcher) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.registeredFetchers[scheme] = f
}

func (d *DynamicFetcher) getFetcherFor(uri string) (Fetcher, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	d.lock.RLock()
	f, ok := d.registeredFetchers[parsed.Scheme]
	d.lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown scheme: %s", ErrInvalidURI, parsed.Scheme)
	}
	return f, nil
}

func (d *DynamicFetcher) Read(ctx context.Context, uri string) ([]byte, error) {
	f, err := d.getFetcherFor(uri)
	if err != nil {
		return nil, err
	}
	return f.Read(ctx, uri)
}
