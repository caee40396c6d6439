package tracer

import (
	"context"
	"testing"

	"realestate-chatbot-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitDisabledIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestServiceResourceCarriesEnvironment(t *testing.T) {
	res := serviceResource("chatbot-api", "staging")

	attrs := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "chatbot-api", attrs["service.name"])
	assert.Equal(t, "staging", attrs["deployment.environment"])
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "full", ratio: 1, want: "AlwaysOnSampler"},
		{name: "above one", ratio: 3, want: "AlwaysOnSampler"},
		{name: "off", ratio: 0, want: "AlwaysOffSampler"},
		{name: "partial", ratio: 0.5, want: "TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, sampler(tt.ratio).Description(), "root:"+tt.want+",")
		})
	}
}
