package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/utils/cache"
	"github.com/f1stats/f1stats-service/pkg/utils/cache/loadercache"
)

// Source delivers the raw records. Implementations live in the sub packages
// (csv, postgres).
type Source interface {
	Name() string
	Load(ctx context.Context) (*Data, error)
}

// Provider hands out immutable snapshots of a Source. A snapshot is reused
// until the ttl expires, so concurrent reports share one consistent view
// while the source may change underneath.
type Provider struct {
	src   Source
	ttl   time.Duration
	l     *log.Logger
	cache cache.Cache[string, Dataset]
}

type ProviderOption func(*Provider)

func WithTTL(ttl time.Duration) ProviderOption {
	return func(p *Provider) {
		p.ttl = ttl
	}
}

func WithLogger(l *log.Logger) ProviderOption {
	return func(p *Provider) {
		p.l = l
	}
}

func NewProvider(src Source, opts ...ProviderOption) *Provider {
	ret := &Provider{
		src: src,
		ttl: 10 * time.Minute,
		l:   log.Default().Named("dataset"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.cache = loadercache.New(
		loadercache.WithLoader[string, Dataset](ret.load),
		loadercache.WithExpiration[string, Dataset](ret.ttl),
		loadercache.WithLogger[string, Dataset](ret.l),
	)
	return ret
}

// Snapshot returns the current dataset snapshot, loading it if required.
func (p *Provider) Snapshot(ctx context.Context) (*Dataset, error) {
	return p.cache.Get(ctx, p.src.Name())
}

func (p *Provider) load(ctx context.Context, name string) (*Dataset, error) {
	start := time.Now()
	data, err := p.src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", name, err)
	}
	ds := New(data)
	p.l.Info("dataset loaded",
		log.String("source", name),
		log.Duration("duration", time.Since(start)),
		log.Any("counts", ds.Counts()))
	return ds, nil
}

// Static is a Source serving fixed data. Used by tests and tools that
// assemble data themselves.
type Static struct {
	Data *Data
}

func (s Static) Name() string { return "static" }

func (s Static) Load(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Data, nil
}
