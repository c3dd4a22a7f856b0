package remote

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type statusErr int

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatusCode() int { return int(e) }

type headBucketClient struct {
	err error
}

func (c headBucketClient) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return nil, c.err
}

func TestS3IsNotFoundErr_BucketRegion(t *testing.T) {
	ctx := context.Background()

	t.Run("missing bucket", func(t *testing.T) {
		_, err := manager.GetBucketRegion(ctx, headBucketClient{err: statusErr(http.StatusNotFound)}, "no-such-bucket")
		if err == nil {
			t.Fatal("expected an error")
		}
		if !s3IsNotFoundErr(err) {
			t.Errorf("expected %v to be a not found error", err)
		}
		if !s3IsNotFoundErr(fmt.Errorf("discovering region: %w", err)) {
			t.Errorf("expected wrapped %v to be a not found error", err)
		}
	})
	t.Run("forbidden", func(t *testing.T) {
		_, err := manager.GetBucketRegion(ctx, headBucketClient{err: statusErr(http.StatusForbidden)}, "private-bucket")
		if err == nil {
			t.Fatal("expected an error")
		}
		if s3IsNotFoundErr(err) {
			t.Errorf("expected %v not to be a not found error", err)
		}
	})
}
