package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/ozkatz/cloudbytes/pkg/config"
	"github.com/ozkatz/cloudbytes/pkg/lazy"
	"github.com/ozkatz/cloudbytes/pkg/remote"
)

var (
	registry = prometheus.NewRegistry()
	fetcher  remote.Fetcher
)

func expandStdin(arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	expanded := string(data)
	return strings.Trim(expanded, "\n \t"), nil
}

func die(fstring string, args ...interface{}) {
	if !strings.HasSuffix(fstring, "\n") {
		fstring += "\n"
	}
	_, _ = os.Stderr.WriteString(fmt.Sprintf(fstring, args...))
	os.Exit(1)
}

func setup() {
	cfg, err := config.Load()
	if err != nil {
		die("could not load configuration: %v", err)
	}
	setupLogging(cfg)
	dynamic := remote.NewDynamicFetcher(remote.Options{
		S3DefaultRegion: cfg.S3.DefaultRegion,
		HTTPClient:      &http.Client{Timeout: cfg.HTTP.Timeout},
	})
	fetcher = remote.Instrumented(dynamic, registry)
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     cfg.LogLevel(),
	}
	if cfg.Logging.Format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// openObject returns a materialized reader for arg, or exits.
func openObject(ctx context.Context, arg string) *lazy.Reader {
	uri, err := expandStdin(arg)
	if err != nil {
		die("could not read stdin: %v", err)
	}
	r := lazy.NewReader(ctx, fetcher, uri)
	if !r.Materialize() {
		die("could not read %s (set %s=WARN for details)", uri, config.LoggingEnvVar)
	}
	return r
}

func dumpMetrics(w io.Writer) {
	families, err := registry.Gather()
	if err != nil {
		slog.Error("could not gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			slog.Error("could not write metrics", "error", err)
			return
		}
	}
}

func byteCountIEC(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB",
		float64(b)/float64(div), "KMGTPE"[exp])
}
