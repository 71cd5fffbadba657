package envexec

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/musher-dev/envexec/internal/buildinfo"
	"github.com/musher-dev/envexec/internal/config"
	"github.com/musher-dev/envexec/internal/observability"
	"github.com/musher-dev/envexec/internal/terminal"
)

// Option configures an Executor.
type Option func(*options)

type options struct {
	color  bool
	logger *slog.Logger
	tracer trace.Tracer
}

// WithColor forces ANSI colors in diagnostics on or off, overriding
// ENVEXEC_COLOR.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithLogger sends launch records to logger instead of the one configured
// through ENVEXEC_LOG_*.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer records launch spans with tracer instead of the global
// OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

var (
	envDefaultsOnce sync.Once
	envDefaults     options
)

// defaultOptions returns the process-wide defaults read from ENVEXEC_*.
// Invalid settings are reported once on stderr and replaced by safe values.
// A configured log file stays open for the life of the test binary.
func defaultOptions() *options {
	envDefaultsOnce.Do(func() {
		cfg := config.Load()

		colored, err := terminal.Detect().ColorEnabled(cfg.Color())
		if err != nil {
			fmt.Fprintf(os.Stderr, "envexec: %v; colors disabled\n", err)
		}

		logger, _, err := observability.NewLogger(&observability.Config{
			Level:      cfg.LogLevel(),
			Format:     cfg.LogFormat(),
			LogFile:    cfg.LogFile(),
			StderrMode: cfg.LogStderr(),
			Version:    buildinfo.Version,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "envexec: %v; logging disabled\n", err)

			logger = slog.New(slog.DiscardHandler)
		}

		envDefaults = options{color: colored, logger: logger}
	})

	o := envDefaults

	return &o
}

// StartTelemetry installs an OTLP/HTTP tracing pipeline when
// ENVEXEC_OTEL_ENABLED is set, so launches show up as spans. Call it from
// TestMain and run the returned shutdown before exiting.
func StartTelemetry(ctx context.Context) (func(context.Context) error, error) {
	cfg := config.Load()

	shutdown, err := observability.SetupTelemetry(ctx, &observability.TelemetryConfig{
		Enabled:  cfg.TelemetryEnabled(),
		Endpoint: cfg.TelemetryEndpoint(),
		Version:  buildinfo.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("start telemetry: %w", err)
	}

	return shutdown, nil
}
