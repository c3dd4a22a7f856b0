package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fsouza/fake-gcs-server/fakestorage"

	"github.com/ozkatz/cloudbytes/pkg/remote"
)

func TestGCSFetcher_Read(t *testing.T) {
	server := fakestorage.NewServer([]fakestorage.Object{
		{
			ObjectAttrs: fakestorage.ObjectAttrs{
				BucketName: "example-bucket",
				Name:       "data/test.csv",
			},
			Content: []byte("col1,col2\na,c\nb,d\n"),
		},
	})
	defer server.Stop()

	ctx := context.Background()
	f := remote.NewGCSFetcher(server.Client())

	t.Run("existing object", func(t *testing.T) {
		data, err := f.Read(ctx, "gs://example-bucket/data/test.csv")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if string(data) != "col1,col2\na,c\nb,d\n" {
			t.Errorf("wrong body returned: %q", data)
		}
	})
	t.Run("missing object", func(t *testing.T) {
		_, err := f.Read(ctx, "gs://example-bucket/data/missing.csv")
		if !errors.Is(err, remote.ErrDoesNotExist) {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("invalid uri", func(t *testing.T) {
		_, err := f.Read(ctx, "gs://example-bucket")
		if !errors.Is(err, remote.ErrInvalidURI) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
