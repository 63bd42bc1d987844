package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/petal-labs/tripflow/booking"
	"github.com/petal-labs/tripflow/config"
	"github.com/petal-labs/tripflow/mcpserver"
	tripotel "github.com/petal-labs/tripflow/otel"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the travel tools over MCP on stdio",
		RunE:  runServe,
	}

	cmd.Flags().String("config", "", "Path to tripflow.yaml")
	cmd.Flags().String("otlp-endpoint", "", "OTLP HTTP collector endpoint (overrides config)")
	cmd.Flags().Bool("no-monitor", false, "Disable the upstream reachability monitor")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	explicitConfigPath, _ := cmd.Flags().GetString("config")
	otlpEndpoint, _ := cmd.Flags().GetString("otlp-endpoint")
	noMonitor, _ := cmd.Flags().GetBool("no-monitor")

	cfg, err := config.LoadDiscovered(explicitConfigPath)
	if err != nil {
		return exitError(exitConfig, "%s", err)
	}
	if err := cfg.Validate(); err != nil {
		return exitError(exitConfig, "%s", err)
	}

	logger := newLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if otlpEndpoint == "" && cfg.Telemetry.Enabled {
		otlpEndpoint = cfg.Telemetry.Endpoint
	}
	if otlpEndpoint != "" {
		shutdown, err := tripotel.SetupTracing(ctx, tripotel.TracingConfig{
			Endpoint:       otlpEndpoint,
			ServiceName:    cfg.Server.Name,
			ServiceVersion: cfg.Server.Version,
		})
		if err != nil {
			return exitError(exitRuntime, "initializing tracing: %v", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(flushCtx)
		}()
	}

	observer, err := tripotel.NewDispatchObserver(
		otelapi.GetMeterProvider().Meter("tripflow/dispatch"),
		otelapi.GetTracerProvider().Tracer("tripflow/dispatch"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing dispatch observability: %v", err)
	}

	stack, err := buildToolStack(cfg, logger, observer)
	if err != nil {
		return exitError(exitRuntime, "%s", err)
	}
	defer stack.close()

	if cfg.Monitor.Enabled && !noMonitor {
		monitor, err := booking.NewMonitor(booking.MonitorConfig{
			Client:   stack.hotelClient,
			Schedule: cfg.Monitor.Schedule,
			Logger:   logger,
		})
		if err != nil {
			return exitError(exitConfig, "configuring upstream monitor: %v", err)
		}
		monitor.Start()
		defer monitor.Stop()
	}

	server, err := mcpserver.NewServer(mcpserver.Config{
		Registry:   stack.registry,
		Dispatcher: stack.dispatcher,
		Info: mcpserver.ServerInfo{
			Name:    cfg.Server.Name,
			Version: cfg.Server.Version,
		},
		Logger: logger,
	})
	if err != nil {
		return exitError(exitRuntime, "creating mcp server: %v", err)
	}

	logger.Info("serving travel tools on stdio", "tools", stack.registry.Len())
	if err := server.Serve(ctx); err != nil && ctx.Err() == nil {
		return exitError(exitRuntime, "server error: %v", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Shutting down...")
	return nil
}
