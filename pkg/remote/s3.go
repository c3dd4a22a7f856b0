package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const DefaultS3Region = "us-east-1"

var _ Fetcher = &S3Fetcher{}

type S3Client interface {
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Fetcher struct {
	lock          *sync.Mutex
	defaultRegion string
	serviceCache  map[string]S3Client
	client        S3Client
}

// NewS3Fetcher discovers each bucket's region on first use, starting from defaultRegion.
func NewS3Fetcher(defaultRegion string) *S3Fetcher {
	if defaultRegion == "" {
		defaultRegion = DefaultS3Region
	}
	return &S3Fetcher{
		lock:          &sync.Mutex{},
		defaultRegion: defaultRegion,
		serviceCache:  make(map[string]S3Client),
	}
}

// NewS3FetcherWithClient uses client for every bucket and skips region discovery.
func NewS3FetcherWithClient(client S3Client) *S3Fetcher {
	f := NewS3Fetcher("")
	f.client = client
	return f
}

func (d *S3Fetcher) getServiceForBucket(ctx context.Context, bucket string) (S3Client, error) {
	if d.client != nil {
		return d.client, nil
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	if svc, ok := d.serviceCache[bucket]; ok {
		return svc, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(d.defaultRegion))
	if err != nil {
		return nil, err
	}
	svc := s3.NewFromConfig(cfg)
	region, err := manager.GetBucketRegion(ctx, svc, bucket)
	if err != nil {
		if s3IsNotFoundErr(err) {
			return nil, fmt.Errorf("%w: bucket %s", ErrDoesNotExist, bucket)
		}
		return nil, err
	}
	if region != d.defaultRegion {
		cfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(region))
		if err != nil {
			return nil, err
		}
		svc = s3.NewFromConfig(cfg)
	}
	d.serviceCache[bucket] = svc
	return svc, nil
}

func s3IsNotFoundErr(err error) bool {
	if err == nil {
		return false
	}
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	var nsb *types.NoSuchBucket
	var bnf manager.BucketNotFound
	return errors.As(err, &nf) || errors.As(err, &nsk) || errors.As(err, &nsb) || errors.As(err, &bnf)
}

func (d *S3Fetcher) Read(ctx context.Context, uri string) ([]byte, error) {
	parsed, err := parseBucketUri(uri)
	if err != nil {
		return nil, err
	}
	svc, err := d.getServiceForBucket(ctx, parsed.Bucket)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(parsed.Bucket),
		Key:    aws.String(parsed.Key),
	})
	if s3IsNotFoundErr(err) {
		slog.Warn("s3:GetObject", "uri", uri, "took_ms", time.Since(start).Milliseconds(), "error", "NotFound")
		return nil, fmt.Errorf("%w: %s", ErrDoesNotExist, uri)
	} else if err != nil {
		slog.Error("s3:GetObject", "uri", uri, "took_ms", time.Since(start).Milliseconds(), "error", err)
		return nil, err
	}
	defer func() {
		_ = out.Body.Close()
	}()
	data, err := io.ReadAll(out.Body)
	slog.Debug("s3:GetObject", "uri", uri, "bucket", parsed.Bucket, "key", parsed.Key,
		"took_ms", time.Since(start).Milliseconds(), "size", len(data), "error", err)
	if err != nil {
		return nil, err
	}
	return data, nil
}
