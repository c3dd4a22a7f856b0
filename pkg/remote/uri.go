package remote

import (
	"fmt"
	"net/url"
	"strings"
)

type bucketUri struct {
	Bucket string
	Key    string
}

// parseBucketUri splits scheme://bucket/key style URIs used by S3 and GCS.
func parseBucketUri(uri string) (*bucketUri, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if parsed.Host == "" || key == "" {
		return nil, fmt.Errorf("%w: expected <scheme>://<bucket>/<key>, got %s", ErrInvalidURI, uri)
	}
	return &bucketUri{
		Bucket: parsed.Host,
		Key:    key,
	}, nil
}
