package remote

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

var _ Fetcher = &InstrumentedFetcher{}

type InstrumentedFetcher struct {
	f        Fetcher
	fetches  *prometheus.CounterVec
	bytes    prometheus.Counter
	duration prometheus.Histogram
}

// Instrumented wraps f with fetch metrics registered on reg. Registering twice on
// the same registerer panics.
func Instrumented(f Fetcher, reg prometheus.Registerer) *InstrumentedFetcher {
	factory := promauto.With(reg)
	return &InstrumentedFetcher{
		f: f,
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cloudbytes_fetch_total",
			Help: "Whole-object fetches, by result.",
		}, []string{"result"}),
		bytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "cloudbytes_fetch_bytes_total",
			Help: "Bytes returned by successful fetches.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cloudbytes_fetch_duration_seconds",
			Help:    "Latency of whole-object fetches.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
}

func (i *InstrumentedFetcher) Read(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	data, err := i.f.Read(ctx, path)
	i.duration.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		i.fetches.WithLabelValues(resultOK).Inc()
		i.bytes.Add(float64(len(data)))
	case errors.Is(err, ErrDoesNotExist):
		i.fetches.WithLabelValues(resultNotFound).Inc()
	default:
		i.fetches.WithLabelValues(resultError).Inc()
	}
	return data, err
}
