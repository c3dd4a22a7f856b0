package remote_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ozkatz/cloudbytes/pkg/remote"
)

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit"

func writeTestFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lorem.txt"), []byte(lorem), 0o644); err != nil {
		t.Fatalf("could not write test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644); err != nil {
		t.Fatalf("could not write test file: %v", err)
	}
	return dir
}

func TestLocalFetcher_Read(t *testing.T) {
	ctx := context.Background()
	dir := writeTestFiles(t)
	l := remote.NewLocalFetcher()

	t.Run("file uri", func(t *testing.T) {
		data, err := l.Read(ctx, "file://"+filepath.Join(dir, "lorem.txt"))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if !bytes.Equal(data, []byte(lorem)) {
			t.Errorf("wrong body returned: %s", data)
		}
	})
	t.Run("bare path", func(t *testing.T) {
		data, err := l.Read(ctx, filepath.Join(dir, "lorem.txt"))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(data) != len(lorem) {
			t.Errorf("expected size %d, got %d", len(lorem), len(data))
		}
	})
	t.Run("empty file", func(t *testing.T) {
		data, err := l.Read(ctx, "local://"+filepath.Join(dir, "empty.txt"))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if len(data) != 0 {
			t.Errorf("expected size 0, got %d", len(data))
		}
	})
	t.Run("non-existent file", func(t *testing.T) {
		_, err := l.Read(ctx, "file://"+filepath.Join(dir, "no_such_file.txt"))
		if !errors.Is(err, remote.ErrDoesNotExist) {
			t.Errorf("unexpected error, %v", err)
		}
	})
	t.Run("empty uri", func(t *testing.T) {
		_, err := l.Read(ctx, "file://")
		if !errors.Is(err, remote.ErrInvalidURI) {
			t.Errorf("unexpected error, %v", err)
		}
	})
}
