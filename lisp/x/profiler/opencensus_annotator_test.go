package profiler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/luthersystems/minilisp/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

// recordingExporter keeps the spans exported by opencensus.
type recordingExporter struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (e *recordingExporter) ExportSpan(sd *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, sd)
}

func (e *recordingExporter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, len(e.spans))
	for i, sd := range e.spans {
		names[i] = sd.Name
	}
	return names
}

func TestNewOpenCensusAnnotator(t *testing.T) {
	// Let's sample at 100% for the purposes of this test...
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := new(recordingExporter)
	trace.RegisterExporter(exporter)
	t.Cleanup(func() { trace.UnregisterExporter(exporter) })

	ppa := profiler.NewOpenCensusAnnotator(context.Background(), profiler.WithSkipNames("def"))
	require.NoError(t, runProfiled(t, ppa, testLisp))

	assert.Equal(t, []string{"+", "add-it", "+", "add-it"}, exporter.names())
	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	assert.Equal(t, exporter.spans[1].SpanID, exporter.spans[0].ParentSpanID)
	require.NotEmpty(t, exporter.spans[1].Annotations)
	assert.Equal(t, "call", exporter.spans[1].Annotations[0].Message)
	assert.Equal(t, int64(2), exporter.spans[1].Annotations[0].Attributes["arity"])
}

func TestOpenCensusEnableWithContext(t *testing.T) {
	ppa := profiler.NewOpenCensusAnnotator(nil)
	assert.Error(t, ppa.Enable())
	assert.Error(t, ppa.EnableWithContext(nil))
	require.NoError(t, ppa.EnableWithContext(context.Background()))
	assert.True(t, ppa.IsEnabled())
	require.NoError(t, ppa.Complete())
}
