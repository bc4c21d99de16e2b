//nolint:whitespace,lll,funlen // ok for tests
package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/presentation"
	"github.com/f1stats/f1stats-service/testsupport/basedata"
)

var errBroken = errors.New("broken source")

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }

func (brokenSource) Load(ctx context.Context) (*dataset.Data, error) {
	return nil, errBroken
}

func sampleEngine() *Engine {
	provider := dataset.NewProvider(
		dataset.Static{Data: basedata.SampleSeason().Data()},
		dataset.WithLogger(log.NewNop()))
	return NewEngine(provider, WithLogger(log.NewNop()))
}

func TestCatalog(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Catalog() {
		assert.False(t, seen[d.Name], "duplicate report %s", d.Name)
		seen[d.Name] = true
		assert.NotEmpty(t, d.Columns, d.Name)

		got, ok := Lookup(d.Name)
		require.True(t, ok)
		assert.Equal(t, d.Name, got.Name)
	}
	for _, name := range []string{
		"pole-to-win", "grid-performance", "qualifying-progression", "fastest-laps",
		"circuit-reliability", "pit-strategy", "constructor-trends", "championship-progression",
		"teammate-battles", "points-efficiency", "driver-form", "grid-conversion",
		"circuit-advantage", "constructor-momentum", "head-to-head",
		"driver-career", "driver-seasons",
	} {
		assert.True(t, seen[name], "missing report %s", name)
	}
	_, ok := Lookup("unknown")
	assert.False(t, ok)
}

// every mapped row contains exactly the declared columns
func TestCatalogColumnsMatchRows(t *testing.T) {
	ds := sample()
	for _, d := range Catalog() {
		t.Run(d.Name, func(t *testing.T) {
			p := Params{Window: 2, MinSample: 1}
			if len(d.Required) > 0 {
				p.DriverID = optID(basedata.DriverHamilton)
				p.Driver2ID = optID(basedata.DriverRussell)
			}
			rows, err := d.Run(bg, ds, p)
			require.NoError(t, err)
			require.NotEmpty(t, rows)
			for _, r := range rows {
				assert.Len(t, r, len(d.Columns))
				for _, c := range d.Columns {
					assert.Contains(t, r, c)
				}
			}
		})
	}
}

func TestEngineRun(t *testing.T) {
	e := sampleEngine()

	rows, err := e.Run(bg, "pit-strategy", Params{})
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	_, err = e.Run(bg, "no-such-report", Params{})
	require.ErrorIs(t, err, ErrUnknownReport)

	_, err = e.Run(bg, "head-to-head", Params{DriverID: optID(1)})
	require.ErrorIs(t, err, ErrMissingParameter)
}

func TestEngineRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(bg)
	cancel()
	_, err := sampleEngine().Run(ctx, "pit-strategy", Params{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngineSourceFailure(t *testing.T) {
	e := NewEngine(
		dataset.NewProvider(brokenSource{}, dataset.WithLogger(log.NewNop())),
		WithLogger(log.NewNop()))
	_, err := e.Run(bg, "pit-strategy", Params{})
	require.ErrorIs(t, err, errBroken)

	got, err := e.RunAll(bg, Params{})
	require.ErrorIs(t, err, errBroken)
	assert.Nil(t, got)
}

func TestEngineRunAll(t *testing.T) {
	e := sampleEngine()
	got, err := e.RunAll(bg, Params{})
	require.NoError(t, err)
	for _, d := range Catalog() {
		_, ok := got[d.Name]
		assert.Equal(t, len(d.Required) == 0, ok, d.Name)
	}
	assert.Len(t, got["pit-strategy"], 4)
}

func TestEngineOutputIsIdempotent(t *testing.T) {
	e := sampleEngine()
	first, err := e.RunAll(bg, Params{Window: 2, MinSample: 1})
	require.NoError(t, err)
	second, err := e.RunAll(bg, Params{Window: 2, MinSample: 1})
	require.NoError(t, err)
	assert.Equal(t,
		presentation.JSON(presentation.Document(first)),
		presentation.JSON(presentation.Document(second)))

	for i := 0; i < 3; i++ {
		a, err := e.Run(bg, "head-to-head", Params{DriverID: optID(1), Driver2ID: optID(847)})
		require.NoError(t, err)
		b, err := e.Run(bg, "head-to-head", Params{DriverID: optID(1), Driver2ID: optID(847)})
		require.NoError(t, err)
		assert.Equal(t, presentation.JSON(presentation.Generic(a)), presentation.JSON(presentation.Generic(b)))
	}
}

func TestEngineTelemetry(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	provider := dataset.NewProvider(
		dataset.Static{Data: basedata.SampleSeason().Data()},
		dataset.WithLogger(log.NewNop()))
	e := NewEngine(provider,
		WithLogger(log.NewNop()),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")))

	_, err := e.Run(bg, "pit-strategy", Params{})
	require.NoError(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "report pit-strategy", ended[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(bg, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	assert.Equal(t, "report_duration", rm.ScopeMetrics[0].Metrics[0].Name)
}
