package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewmark/viewmark/internal/log"
)

func TestParseOTLPEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    otlpTarget
		wantErr string
	}{
		{name: "http default path", raw: "http://collector:4318", want: otlpTarget{HostPort: "collector:4318", Path: "/v1/traces", Insecure: true}},
		{name: "https custom path", raw: " https://otel.example.com/ingest/traces ", want: otlpTarget{HostPort: "otel.example.com", Path: "/ingest/traces"}},
		{name: "bare host port", raw: "localhost:4318", want: otlpTarget{HostPort: "localhost:4318", Path: "/v1/traces", Insecure: true}},
		{name: "empty", raw: "  ", wantErr: "empty OTLP endpoint"},
		{name: "path without scheme", raw: "collector:4318/v1/traces", wantErr: "no scheme"},
		{name: "grpc scheme", raw: "grpc://collector:4317", wantErr: "not http or https"},
		{name: "no host", raw: "http:///v1/traces", wantErr: "no host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOTLPEndpoint(tt.raw)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTracingConfig_Defaults(t *testing.T) {
	for _, key := range []string{"OTEL_TRACES_ENABLED", "OTEL_SERVICE_NAME", "VIEWMARK_VERSION", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_TRACES_SAMPLER_ARG"} {
		unsetEnv(t, key)
	}
	t.Setenv(AppEnvKey, "")

	cfg := NewTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "viewmark", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "http://localhost:4318", cfg.Endpoint)
	assert.Equal(t, 1.0, cfg.SampleRatio)
	assert.Empty(t, cfg.MiddlewareServiceName())
}

func TestNewTracingConfig_FromEnvironment(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "viewmark-api")
	t.Setenv("VIEWMARK_VERSION", "1.4.2")
	t.Setenv(AppEnvKey, "prod")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")

	cfg := NewTracingConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "viewmark-api", cfg.MiddlewareServiceName())
	assert.Equal(t, "1.4.2", cfg.ServiceVersion)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, 0.25, cfg.SampleRatio)

	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "4")
	assert.Equal(t, 1.0, NewTracingConfig().SampleRatio)
}

func TestTracingConfig_ResourceAttributes(t *testing.T) {
	cfg := &TracingConfig{ServiceName: "viewmark", ServiceVersion: "1.0.0", Environment: EnvTest}

	res, err := cfg.resource()
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "viewmark", attrs["service.name"])
	assert.Equal(t, "1.0.0", attrs["service.version"])
	assert.Equal(t, "test", attrs["deployment.environment"])
}

func TestSetupTracing_DisabledReturnsNoShutdown(t *testing.T) {
	shutdown, err := SetupTracing(log.NewDiscardLogger(), &TracingConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, shutdown)

	_, err = SetupTracing(log.NewDiscardLogger(), &TracingConfig{Enabled: true, Endpoint: "grpc://x:1"})
	assert.Error(t, err)
}
