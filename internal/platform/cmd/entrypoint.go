// Package cmd holds startup helpers shared by the crumbtrail commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/crumbtrail/internal/platform/config"
	telemetry "github.com/louisbranch/crumbtrail/internal/platform/otel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers used for telemetry resources and log prefixes.
const (
	ServiceWeb        = "web"
	ServiceCrumbcheck = "crumbcheck"
)

const tracerName = "github.com/louisbranch/crumbtrail/internal/platform/cmd"

var knownServices = map[string]bool{
	ServiceWeb:        true,
	ServiceCrumbcheck: true,
}

// TelemetryName maps a service identifier to its telemetry resource name.
func TelemetryName(service string) (string, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return "", errors.New("service name is required")
	}
	if !knownServices[service] {
		return "", fmt.Errorf("unknown service %q", service)
	}
	return "crumbtrail-" + service, nil
}

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
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

// ParseConfigFromArgs loads defaults from env and then lets flags override
// them. Register flags on fs with zero defaults before calling it; env values
// are written after registration and only flags present in args win.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures tracing and executes a command run loop inside
// a "<service>.run" span.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions is RunWithTelemetry with explicit options.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	name, err := TelemetryName(service)
	if err != nil {
		return err
	}
	service = strings.TrimSpace(service)
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	shutdown, err := telemetry.Setup(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: setup telemetry: %w", service, err)
	}
	defer func() {
		timeout := options.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()

	ctx, span := otel.Tracer(tracerName).Start(ctx, service+".run")
	defer span.End()
	if err := run(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
