package remote_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ozkatz/cloudbytes/pkg/remote"
)

type fakeS3 struct {
	objects map[string][]byte
	calls   int
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Fetcher_Read(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{
		"example-bucket/path/to/test.csv": []byte("col1,col2\na,c\nb,d\n"),
	}}
	f := remote.NewS3FetcherWithClient(client)

	t.Run("existing object", func(t *testing.T) {
		data, err := f.Read(ctx, "s3://example-bucket/path/to/test.csv")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if string(data) != "col1,col2\na,c\nb,d\n" {
			t.Errorf("wrong body returned: %q", data)
		}
	})
	t.Run("missing key", func(t *testing.T) {
		_, err := f.Read(ctx, "s3://example-bucket/nope.csv")
		if !errors.Is(err, remote.ErrDoesNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("missing key in uri", func(t *testing.T) {
		calls := client.calls
		_, err := f.Read(ctx, "s3://example-bucket/")
		if !errors.Is(err, remote.ErrInvalidURI) {
			t.Errorf("unexpected error: %v", err)
		}
		if client.calls != calls {
			t.Errorf("expected no GetObject call for an invalid uri")
		}
	})
}
