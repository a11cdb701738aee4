package observability

import (
	"context"

	"github.com/veriscan/casedesk/internal/config"
	"github.com/veriscan/casedesk/internal/observability/metrics"
	"github.com/veriscan/casedesk/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(
		provideTracingConfig,
		provideTracerProvider,
		metrics.NewHTTPMetrics,
		metrics.NewEscalationMetrics,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}

func provideTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:        cfg.OtelEnabled,
		ServiceName:    cfg.AppName,
		ServiceVersion: cfg.AppVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.OTLPEndpoint,
	}
}

func provideTracerProvider(lc fx.Lifecycle, cfg tracing.Config, log *zap.Logger) (*sdktrace.TracerProvider, error) {
	provider, err := tracing.NewProvider(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		log.Info("tracing disabled")
		return nil, nil
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
