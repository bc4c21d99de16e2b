package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/dataset"
)

// Engine runs catalog reports against the snapshots of a dataset provider.
type Engine struct {
	provider *dataset.Provider
	log      *log.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	duration metric.Float64Histogram
}

type Option func(*Engine)

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

func WithMeter(meter metric.Meter) Option {
	return func(e *Engine) {
		e.meter = meter
	}
}

func NewEngine(provider *dataset.Provider, opts ...Option) *Engine {
	ret := &Engine{
		provider: provider,
		log:      log.Default().Named("report"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("f1stats")
	}
	if ret.meter == nil {
		ret.meter = otel.Meter("f1stats")
	}
	var err error
	ret.duration, err = ret.meter.Float64Histogram("report_duration",
		metric.WithDescription("execution of a report"),
		metric.WithUnit("s"))
	if err != nil {
		ret.log.Warn("could not create report histogram", log.ErrorField(err))
	}
	return ret
}

// Run executes the named report on the current snapshot.
func (e *Engine) Run(ctx context.Context, name string, p Params) ([]map[string]any, error) {
	def, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	if err := p.require(def.Required...); err != nil {
		return nil, err
	}
	ds, err := e.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, ds, def, p)
}

// RunAll executes all reports without required parameters concurrently on
// one snapshot. The first failing report cancels the others, no partial
// result is returned in that case.
func (e *Engine) RunAll(ctx context.Context, p Params) (map[string][]map[string]any, error) {
	ds, err := e.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var mu sync.Mutex
	ret := make(map[string][]map[string]any)
	g, gctx := errgroup.WithContext(ctx)
	for _, def := range Catalog() {
		if len(def.Required) > 0 {
			e.log.Debug("skipping report with required parameters", log.String("report", def.Name))
			continue
		}
		g.Go(func() error {
			rows, err := e.run(gctx, ds, def, p)
			if err != nil {
				return fmt.Errorf("report %s: %w", def.Name, err)
			}
			mu.Lock()
			defer mu.Unlock()
			ret[def.Name] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

//nolint:whitespace // can't make both editor and linter happy
func (e *Engine) run(
	ctx context.Context,
	ds *dataset.Dataset,
	def Definition,
	p Params,
) ([]map[string]any, error) {
	ctx, span := e.tracer.Start(ctx, "report "+def.Name,
		trace.WithAttributes(attribute.String("report.name", def.Name)))
	defer span.End()

	start := time.Now()
	rows, err := def.Run(ctx, ds, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.Warn("report failed", log.String("report", def.Name), log.ErrorField(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.rows", len(rows)))
	if e.duration != nil {
		e.duration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("report.name", def.Name)))
	}
	e.log.Debug("report done",
		log.String("report", def.Name),
		log.Int("rows", len(rows)),
		log.Duration("duration", time.Since(start)))
	return rows, nil
}
