//nolint:funlen // ok for tests
package loadercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/utils/cache"
)

type counter struct {
	calls int
}

func (c *counter) load(_ context.Context, key string) (*string, error) {
	c.calls++
	if key == "bad" {
		return nil, errors.New("load failed")
	}
	v := key + "-value"
	return &v, nil
}

func TestLoaderCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := &counter{}
	lc := New(
		WithLoader[string, string](c.load),
		WithExpiration[string, string](time.Minute),
		WithClock[string, string](clock),
		WithLogger[string, string](log.NewNop()),
	)

	v, err := lc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a-value", *v)
	assert.Equal(t, 1, c.calls)

	// served from cache
	_, err = lc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, c.calls)

	// expired entries are loaded again
	now = now.Add(2 * time.Minute)
	_, err = lc.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, c.calls)

	// other keys are loaded independently
	_, err = lc.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 3, c.calls)

	_, err = lc.Get(ctx, "bad")
	assert.Error(t, err)
}

func TestLoaderCacheWithoutLoader(t *testing.T) {
	lc := New[string, string](WithLogger[string, string](log.NewNop()))
	_, err := lc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
