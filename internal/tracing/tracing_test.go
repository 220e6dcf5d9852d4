package tracing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/opdeck/internal/config"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	ctx, span := provider.Tracer().Start(context.Background(), "console.play")
	require.NotNil(t, ctx)
	require.False(t, span.SpanContext().IsValid(), "noop spans carry no context")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces", "traces.jsonl")

	provider, err := NewProvider(config.TracingConfig{
		Enabled:    true,
		Exporter:   "file",
		FilePath:   tracePath,
		SampleRate: 1.0,
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), SpanPrefixConsole+"unit_activated")
	span.SetAttributes(attribute.String(AttrUnitName, "Joystick"))
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan(), "one span line expected")
	var rec SpanRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
	require.Equal(t, "console.unit_activated", rec.Name)
	require.Equal(t, "unit_activated", rec.Action)
	require.Equal(t, "Joystick", rec.Attributes[AttrUnitName])
	require.Equal(t, "INTERNAL", rec.Kind)
}

func TestNewProvider_NoneExporter(t *testing.T) {
	provider, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "none"})
	require.NoError(t, err)
	_, span := provider.Tracer().Start(context.Background(), "x")
	require.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "file"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file_path required")

	_, err = NewProvider(config.TracingConfig{Enabled: true, Exporter: "zipkin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter")
}

func TestFileExporter_AppendsAndRejectsAfterShutdown(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"existing":"data"}`+"\n"), 0o600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	start := time.Now()
	stub := tracetest.SpanStub{
		Name:      "console.play",
		StartTime: start,
		EndTime:   start.Add(150 * time.Millisecond),
		Status:    sdktrace.Status{Code: codes.Error, Description: "boom"},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	content, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	lines := 0
	var last SpanRecord
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines++
		if lines == 2 {
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &last))
		}
	}
	require.Equal(t, 2, lines)
	require.Equal(t, "ERROR", last.Status)
	require.Equal(t, "boom", last.StatusMsg)
	require.InDelta(t, 150.0, last.DurationMs, 0.001)

	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.ErrorIs(t, err, errExporterClosed)
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer("test").Start(context.Background(), "console.unit_activated")
	RecordError(span, nil)
	RecordError(span, errors.New("unknown unit"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1, "nil error records nothing")
	require.Equal(t, []string{"unknown unit"}, newSpanRecord(ended[0]).Errors)
}
