package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/viewmark/viewmark/internal/log"
	"github.com/viewmark/viewmark/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	defaultTracingService  = "viewmark"
	defaultOTLPEndpoint    = "http://localhost:4318"
	defaultOTLPTracesPath  = "/v1/traces"
	defaultServiceVersion  = "dev"
	defaultTraceSampleRate = 1.0
)

// TracingConfig describes how spans leave the process. Tracing stays off
// unless OTEL_TRACES_ENABLED is true.
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    Environment
	Endpoint       string
	SampleRatio    float64
}

func NewTracingConfig() *TracingConfig {
	cfg := &TracingConfig{
		Enabled:        utils.GetEnvBool("OTEL_TRACES_ENABLED", false),
		ServiceName:    utils.GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", defaultTracingService),
		ServiceVersion: utils.GetEnvTrimmedOrDefault("VIEWMARK_VERSION", defaultServiceVersion),
		Environment:    CurrentEnvironment(),
		Endpoint:       utils.GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", defaultOTLPEndpoint),
		SampleRatio:    utils.GetEnvFloatOrDefault("OTEL_TRACES_SAMPLER_ARG", defaultTraceSampleRate),
	}

	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		cfg.SampleRatio = defaultTraceSampleRate
	}

	return cfg
}

// MiddlewareServiceName is what the router hands to otelgin; empty keeps
// the middleware off.
func (c *TracingConfig) MiddlewareServiceName() string {
	if c == nil || !c.Enabled {
		return ""
	}
	return c.ServiceName
}

func (c *TracingConfig) resource() (*resource.Resource, error) {
	return resource.New(
		context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", c.ServiceName),
			attribute.String("service.version", c.ServiceVersion),
			attribute.String("service.namespace", "viewmark"),
			attribute.String("deployment.environment", string(c.Environment)),
		),
	)
}

// SetupTracing installs a global tracer provider exporting over OTLP/HTTP.
// The returned shutdown func is nil when tracing is disabled.
func SetupTracing(logger *log.Logger, cfg *TracingConfig) (func(context.Context) error, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	target, err := parseOTLPEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	exporter, err := otlptracehttp.New(context.Background(), target.options()...)
	if err != nil {
		return nil, fmt.Errorf("setup tracing exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("setup tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("OpenTelemetry tracing enabled",
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"environment", string(cfg.Environment),
		"endpoint", target.HostPort+target.Path,
		"sample_ratio", cfg.SampleRatio,
	)

	return tp.Shutdown, nil
}

type otlpTarget struct {
	HostPort string
	Path     string
	Insecure bool
}

func (t otlpTarget) options() []otlptracehttp.Option {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(t.HostPort),
		otlptracehttp.WithURLPath(t.Path),
	}
	if t.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// parseOTLPEndpoint accepts http(s)://host:port[/path] or a bare host:port,
// which is treated as plain http.
func parseOTLPEndpoint(raw string) (otlpTarget, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return otlpTarget{}, fmt.Errorf("empty OTLP endpoint")
	}

	if !strings.Contains(raw, "://") {
		if strings.ContainsAny(raw, "/?#") {
			return otlpTarget{}, fmt.Errorf("OTLP endpoint %q has a path but no scheme", raw)
		}
		return otlpTarget{HostPort: raw, Path: defaultOTLPTracesPath, Insecure: true}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return otlpTarget{}, fmt.Errorf("OTLP endpoint %q has no host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return otlpTarget{}, fmt.Errorf("OTLP endpoint %q: scheme %q is not http or https", raw, u.Scheme)
	}

	path := u.EscapedPath()
	if path == "" || path == "/" {
		path = defaultOTLPTracesPath
	}

	return otlpTarget{HostPort: u.Host, Path: path, Insecure: scheme == "http"}, nil
}
