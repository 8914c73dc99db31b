package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	debtsGenerated  metric.Int64Counter
	paymentsSettled metric.Int64Counter
	chargesCreated  metric.Int64Counter
	auditDropped    metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "clubops"
	}
	meter := provider.Meter(name)

	debtsGenerated, err := meter.Int64Counter("clubops_debts_generated_total")
	if err != nil {
		return nil, err
	}
	paymentsSettled, err := meter.Int64Counter("clubops_payments_settled_total")
	if err != nil {
		return nil, err
	}
	chargesCreated, err := meter.Int64Counter("clubops_charges_created_total")
	if err != nil {
		return nil, err
	}
	auditDropped, err := meter.Int64Counter("clubops_audit_writes_dropped_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		debtsGenerated:  debtsGenerated,
		paymentsSettled: paymentsSettled,
		chargesCreated:  chargesCreated,
		auditDropped:    auditDropped,
	}, nil
}

// RecordDebtsGenerated counts pending debts written by a generation run.
func (m *Metrics) RecordDebtsGenerated(ctx context.Context, period string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.debtsGenerated.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("period", strings.TrimSpace(period)),
	))
}

// RecordPaymentSettled counts confirmed settlements by method.
func (m *Metrics) RecordPaymentSettled(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.paymentsSettled.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", strings.TrimSpace(method)),
	))
}

// RecordChargeCreated counts ad-hoc charge intake by concept.
func (m *Metrics) RecordChargeCreated(ctx context.Context, concept string) {
	if m == nil {
		return
	}
	m.chargesCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("concept", strings.TrimSpace(concept)),
	))
}

// RecordAuditDropped counts best-effort audit writes that were lost.
func (m *Metrics) RecordAuditDropped(ctx context.Context) {
	if m == nil {
		return
	}
	m.auditDropped.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}
