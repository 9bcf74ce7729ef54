package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	success := DomainOperations.WithLabelValues("post", "create", "success")
	failure := DomainOperations.WithLabelValues("post", "create", "error")
	beforeOK, beforeErr := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordOperation("post", "create", nil)
	RecordOperation("post", "create", errors.New("boom"))
	RecordOperation("post", "create", nil)

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(success))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(failure))
}

func TestTrackQuery(t *testing.T) {
	before := testutil.CollectAndCount(DatabaseQueryLatency)
	TrackQuery("select", "observability_test")()
	assert.Equal(t, before+1, testutil.CollectAndCount(DatabaseQueryLatency))
}

func TestRepoLogger(t *testing.T) {
	previous := GlobalLogger
	t.Cleanup(func() { GlobalLogger = previous })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	NewRepoLogger("posts").LogCreate(context.Background(), map[string]interface{}{"post_id": 7, "author": "alice"})
	assert.Contains(t, buf.String(), `"table":"posts"`)
	assert.Contains(t, buf.String(), `"operation":"create"`)
	assert.Contains(t, buf.String(), `"post_id":7`)

	buf.Reset()
	Config.EnableRepoLogging = false
	t.Cleanup(func() { Config.EnableRepoLogging = true })
	NewRepoLogger("posts").LogDelete(context.Background(), nil)
	assert.Empty(t, buf.String())
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "board-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, span := GetTraceLayer().TraceServiceCall(context.Background(), "post", "create")
	span.End()
}

func TestInitTracing_StdoutExportsSpans(t *testing.T) {
	previousProvider, previousTracer := otel.GetTracerProvider(), Tracer
	t.Cleanup(func() {
		otel.SetTracerProvider(previousProvider)
		Tracer = previousTracer
	})

	var buf bytes.Buffer
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:  "board-test",
		Environment:  "test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1,
		Output:       &buf,
	})
	require.NoError(t, err)

	_, span := GetTraceLayer().TraceServiceCall(context.Background(), "post_service", "create")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"post_service.create"`)
	assert.Contains(t, buf.String(), "board-test")
}

func TestInitTracing_UnknownExporter(t *testing.T) {
	_, err := InitTracing(TracingConfig{ServiceName: "board-test", Enabled: true, Exporter: "zipkin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zipkin")
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(1).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, newSampler(0).Description(), "root:AlwaysOffSampler")
	assert.Contains(t, newSampler(0.25).Description(), "root:TraceIDRatioBased{0.25}")
}
