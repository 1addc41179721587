// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amontalvo1020/rentalspro/internal/config"
)

func TestNewTraceExporter(t *testing.T) {
	exp, err := newTraceExporter(context.Background(), config.OtelConfig{
		Endpoint: "localhost:4317",
		Insecure: true,
	})
	require.NoError(t, err)
	require.NotNil(t, exp)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, exp.Shutdown(ctx))
}

func TestNewTelemetryExportsOnlyWhenEnabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	app := config.AppConfig{Name: "rentalspro", Environment: "test"}

	off, err := NewTelemetry(ctx, config.OtelConfig{Endpoint: "localhost:4317"}, app)
	require.NoError(t, err)
	assert.False(t, off.Exporting())
	assert.NoError(t, off.Shutdown(ctx))

	on, err := NewTelemetry(ctx, config.OtelConfig{
		Endpoint: "localhost:4317",
		Enabled:  true,
		Insecure: true,
	}, app)
	require.NoError(t, err)
	assert.True(t, on.Exporting())
	assert.NoError(t, on.Shutdown(ctx))
}

func TestSampleRate(t *testing.T) {
	assert.Equal(t, defaultSampleRate, sampleRate(0))
	assert.Equal(t, defaultSampleRate, sampleRate(1.5))
	assert.Equal(t, 0.25, sampleRate(0.25))
}
