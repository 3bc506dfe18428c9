// Package cmd holds the startup plumbing shared by manaforge commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/manaforge/internal/platform/config"
	"github.com/louisbranch/manaforge/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// ServiceRules names the rules engine process in telemetry and logs.
const ServiceRules = "rules"

// Invocation describes one command run.
type Invocation struct {
	// Service is the process name reported to telemetry.
	Service string
	// Command is the subcommand and the name of the root span.
	Command string
	// Logger receives start, finish and shutdown records. Defaults to
	// slog.Default.
	Logger *slog.Logger
	// ShutdownTimeout bounds the telemetry flush on exit.
	ShutdownTimeout time.Duration
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// Run sets up tracing for inv.Service and calls run inside a root span named
// after inv.Command. The span records run's error. Shutdown failures are
// logged, never returned.
func Run(ctx context.Context, inv Invocation, run func(context.Context) error) error {
	inv.Service = strings.TrimSpace(inv.Service)
	if inv.Service == "" {
		return errors.New("service name is required")
	}
	inv.Command = strings.TrimSpace(inv.Command)
	if inv.Command == "" {
		return errors.New("command name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	logger := inv.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", inv.Service), slog.String("command", inv.Command))

	shutdown, err := otel.Setup(ctx, inv.Service)
	if err != nil {
		return err
	}
	defer func() {
		timeout := inv.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", slog.Any("error", err))
		}
	}()

	ctx, span := otel.Tracer(inv.Service).Start(ctx, inv.Service+"."+inv.Command,
		trace.WithAttributes(attribute.String("manaforge.command", inv.Command)))
	defer span.End()

	started := time.Now()
	logger.DebugContext(ctx, "command started")
	err = run(ctx)
	elapsed := time.Since(started)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.DebugContext(ctx, "command failed", slog.Duration("elapsed", elapsed), slog.Any("error", err))
		return err
	}
	logger.DebugContext(ctx, "command finished", slog.Duration("elapsed", elapsed))
	return nil
}
