// Package telemetry wires the process wide logger and the OpenTelemetry
// providers used by the mapcore command.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	sloglogrus "github.com/samber/slog-logrus/v2"
	slogmulti "github.com/samber/slog-multi"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/exporters/autoexport"
	"go.opentelemetry.io/otel"
	logglobal "go.opentelemetry.io/otel/log/global"
	logsdk "go.opentelemetry.io/otel/sdk/log"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"golang.org/x/sync/errgroup"
)

type Client struct {
	log *slog.Logger

	tracerProvider *tracesdk.TracerProvider
	metricProvider *metricsdk.MeterProvider
	loggerProvider *logsdk.LoggerProvider
}

func setEnvIfNotSet(key, value string) {
	if _, ok := os.LookupEnv(key); !ok {
		os.Setenv(key, value)
	}
}

// Setup installs the default slog logger, fanned out to logrus and the otel
// log bridge, and registers global meter, tracer and logger providers.
// Exporters come from the OTEL_*_EXPORTER variables and default to none.
func Setup(ctx context.Context, appName string, level slog.Level) (*Client, error) {
	setEnvIfNotSet("OTEL_TRACES_EXPORTER", "none")
	setEnvIfNotSet("OTEL_LOGS_EXPORTER", "none")
	setEnvIfNotSet("OTEL_METRICS_EXPORTER", "none")

	client := &Client{}
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(cause error) {
		slog.ErrorContext(ctx, "otel error", "component", "telemetry", "error", cause.Error())
	}))

	hostName, _ := os.Hostname()
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.HostName(hostName),
			semconv.ServiceInstanceID(uuid.NewString()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	metricReader, err := autoexport.NewMetricReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metric exporter: %w", err)
	}
	client.metricProvider = metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(metricReader),
	)
	otel.SetMeterProvider(client.metricProvider)

	spanExporter, err := autoexport.NewSpanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trace exporter: %w", err)
	}
	client.tracerProvider = tracesdk.NewTracerProvider(
		tracesdk.WithResource(res),
		tracesdk.WithBatcher(spanExporter),
	)
	otel.SetTracerProvider(client.tracerProvider)

	logExporter, err := autoexport.NewLogExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log exporter: %w", err)
	}
	client.loggerProvider = logsdk.NewLoggerProvider(
		logsdk.WithResource(res),
		logsdk.WithProcessor(logsdk.NewBatchProcessor(logExporter)),
	)
	logglobal.SetLoggerProvider(client.loggerProvider)

	slog.SetDefault(slog.New(slogmulti.Fanout(
		sloglogrus.Option{Level: level, Logger: logrus.StandardLogger()}.NewLogrusHandler(),
		otelslog.NewHandler(appName, otelslog.WithLoggerProvider(client.loggerProvider)),
	)))

	client.log = slog.With("component", "telemetry")
	client.log.DebugContext(ctx, "telemetry initialized")

	return client, nil
}

func (client *Client) Flush(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return client.metricProvider.ForceFlush(ctx) })
	g.Go(func() error { return client.loggerProvider.ForceFlush(ctx) })
	g.Go(func() error { return client.tracerProvider.ForceFlush(ctx) })
	return g.Wait()
}

func (client *Client) Shutdown(ctx context.Context) {
	if err := client.metricProvider.Shutdown(ctx); err != nil {
		client.log.ErrorContext(ctx, "error shutting down metric provider", "error", err.Error())
	}
	if err := client.tracerProvider.Shutdown(ctx); err != nil {
		client.log.ErrorContext(ctx, "error shutting down tracer provider", "error", err.Error())
	}
	if err := client.loggerProvider.Shutdown(ctx); err != nil {
		client.log.ErrorContext(ctx, "error shutting down logger provider", "error", err.Error())
	}
}

// ParseLevel maps a flag value such as "debug" or "WARN" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
