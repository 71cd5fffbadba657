// Package envexec launches child processes from tests with a fixed set of
// environment variables and fails the test, with a readable diagnostic, when
// a child cannot be started or exits unsuccessfully.
//
// An Executor is built once and reused:
//
//	exe := envexec.New([]envexec.Binding{envexec.Bind("FOO", "BAR")})
//	exe.Run(t, "/bin/sh", "-c", `[ "$FOO" = "BAR" ]`)
//
// Each call blocks until the child exits. There is no timeout; a child that
// never exits blocks the test.
package envexec

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/musher-dev/envexec/internal/ansi"
	"github.com/musher-dev/envexec/internal/diagnostic"
	launcherrors "github.com/musher-dev/envexec/internal/errors"
	"github.com/musher-dev/envexec/internal/launch"
	"github.com/musher-dev/envexec/internal/observability"
)

// Binding is one environment variable given to every launched process.
type Binding = launch.Binding

// Bind returns a Binding from any string-like key and value.
func Bind[K, V ~string](key K, value V) Binding {
	return Binding{Key: string(key), Value: string(value)}
}

// TB is the part of testing.TB that Run needs.
type TB interface {
	Helper()
	Fatal(args ...any)
}

// Executor holds environment bindings and launches processes with them.
// It is safe for concurrent use; the bindings never change after New.
type Executor struct {
	env       []Binding
	formatter *diagnostic.Formatter
	logger    *slog.Logger
	tracer    trace.Tracer
}

// New returns an Executor that passes env to every launched process. The
// bindings are stored as given: no validation, normalization or
// deduplication.
func New(env []Binding, opts ...Option) *Executor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	tracer := o.tracer
	if tracer == nil {
		tracer = observability.Tracer()
	}

	return &Executor{
		env:       slices.Clone(env),
		formatter: diagnostic.New(o.color),
		logger:    o.logger,
		tracer:    tracer,
	}
}

// Env returns a copy of the bindings.
func (e *Executor) Env() []Binding {
	return slices.Clone(e.env)
}

// Run launches args[0] with args[1:] and waits for it. It returns only when
// the process ran and exited successfully; otherwise it calls t.Fatal with a
// diagnostic naming the command, its exit status and its output.
func (e *Executor) Run(t TB, args ...string) {
	t.Helper()

	if err := e.Check(args...); err != nil {
		t.Fatal(fatalMessage(err))
	}
}

// Check is Run without the test: it returns the diagnostic as an error
// instead of failing.
func (e *Executor) Check(args ...string) error {
	launchID := uuid.NewString()

	ctx, span := e.tracer.Start(context.Background(), "envexec.run",
		trace.WithAttributes(
			attribute.String("launch.id", launchID),
			attribute.Int("process.args.count", len(args)),
		),
	)
	defer span.End()

	logger := e.logger.With(slog.String("launch.id", launchID))

	err := e.check(ctx, logger, span, args)
	if err != nil {
		kind := launcherrors.KindOf(err)

		span.SetStatus(codes.Error, kind.String())
		span.SetAttributes(attribute.String("envexec.failure", kind.String()))

		logger.WarnContext(ctx, "launch failed",
			slog.String("failure", kind.String()),
			slog.String("diagnostic", ansi.Strip(err.Error())),
		)
	}

	return err
}

func (e *Executor) check(ctx context.Context, logger *slog.Logger, span trace.Span, args []string) error {
	if len(args) > 0 {
		span.SetAttributes(attribute.String("process.command", args[0]))
	}

	keys := make([]string, len(e.env))
	values := make([]string, len(e.env))

	for i, b := range e.env {
		keys[i], values[i] = b.Key, b.Value
	}

	logger.DebugContext(ctx, "launch started",
		slog.Any("args", args),
		observability.EnvAttr(keys, values),
	)

	res, err := launch.Execute(args, slices.Clone(e.env))
	if err != nil {
		var le *launcherrors.LaunchError
		if launcherrors.As(err, &le) && le.Kind == launcherrors.KindSpawn {
			le.WithDetail(e.formatter.Command(args))
		}

		return err
	}

	span.SetAttributes(attribute.Int("process.exit.code", res.Status.Code))

	logger.DebugContext(ctx, "launch finished",
		slog.String("status", res.Status.String()),
		slog.Duration("duration", res.Duration),
		slog.Int("stdout.bytes", len(res.Stdout)),
		slog.Int("stderr.bytes", len(res.Stderr)),
	)

	if res.Status.Success {
		return nil
	}

	report, err := e.formatter.Format(res)
	if err != nil {
		var le *launcherrors.LaunchError
		if launcherrors.As(err, &le) {
			le.WithDetail(e.formatter.Command(args) + "\n" + res.Status.String())
		}

		return err
	}

	return launcherrors.CommandFailed(report)
}

// fatalMessage renders err for t.Fatal, appending the hint when there is one.
func fatalMessage(err error) string {
	var le *launcherrors.LaunchError
	if launcherrors.As(err, &le) && le.Hint != "" {
		return fmt.Sprintf("%s\nhint: %s", le.Error(), le.Hint)
	}

	return err.Error()
}
