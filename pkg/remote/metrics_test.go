package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentedFetcher(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Write("test.csv", []byte("col1,col2\n"))
	broken := errors.New("connection reset")

	reg := prometheus.NewRegistry()
	f := Instrumented(FetcherFunc(func(ctx context.Context, path string) ([]byte, error) {
		if path == "broken" {
			return nil, broken
		}
		return store.Read(ctx, path)
	}), reg)

	if _, err := f.Read(ctx, "test.csv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Read(ctx, "missing.csv"); !errors.Is(err, ErrDoesNotExist) {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.Read(ctx, "broken"); !errors.Is(err, broken) {
		t.Fatalf("unexpected error: %v", err)
	}

	for result, expected := range map[string]float64{resultOK: 1, resultNotFound: 1, resultError: 1} {
		if got := testutil.ToFloat64(f.fetches.WithLabelValues(result)); got != expected {
			t.Errorf("result %s: expected %v fetches, got %v", result, expected, got)
		}
	}
	if got := testutil.ToFloat64(f.bytes); got != 10 {
		t.Errorf("expected 10 bytes, got %v", got)
	}
	if n := testutil.CollectAndCount(f.duration); n != 1 {
		t.Errorf("expected 1 histogram, got %d", n)
	}
}
