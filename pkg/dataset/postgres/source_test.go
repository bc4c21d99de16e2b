//nolint:whitespace,lll,funlen // ok for tests
package postgres_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/dataset/postgres"
	"github.com/f1stats/f1stats-service/pkg/model"
	"github.com/f1stats/f1stats-service/testsupport/basedata"
	"github.com/f1stats/f1stats-service/testsupport/testdb"
)

func TestReplaceAndLoad(t *testing.T) {
	pool := testdb.InitTestDB()
	ctx := context.Background()
	want := basedata.SampleSeason().Data()

	store := postgres.NewStore(pool, postgres.WithStoreLogger(log.NewNop()))
	require.NoError(t, store.Replace(ctx, want))

	src := postgres.NewSourceFromPool(pool, postgres.WithLogger(log.NewNop()))
	got, err := src.Load(ctx)
	require.NoError(t, err)

	opts := cmp.Options{
		cmpopts.SortSlices(func(a, b model.Driver) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.Constructor) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.Circuit) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.Status) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.Race) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.Result) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.Qualifying) bool { return a.ID < b.ID }),
		cmpopts.SortSlices(func(a, b model.PitStop) bool {
			return a.RaceID*1000000+a.DriverID*100+a.Stop < b.RaceID*1000000+b.DriverID*100+b.Stop
		}),
		cmpopts.SortSlices(func(a, b model.LapTime) bool {
			return a.RaceID*10000000+a.DriverID*1000+a.Lap < b.RaceID*10000000+b.DriverID*1000+b.Lap
		}),
		cmpopts.SortSlices(func(a, b model.DriverStanding) bool {
			return a.RaceID*10000+a.DriverID < b.RaceID*10000+b.DriverID
		}),
		cmpopts.SortSlices(func(a, b model.ConstructorStanding) bool {
			return a.RaceID*10000+a.ConstructorID < b.RaceID*10000+b.ConstructorID
		}),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOrdersRacesChronologically(t *testing.T) {
	pool := testdb.InitTestDB()
	ctx := context.Background()
	data := basedata.NewBuilder().
		Circuit(1, "Circuit", "Country").
		Race(12, 2021, 2, 1).
		Race(10, 2020, 1, 1).
		Race(11, 2021, 1, 1).
		Data()
	require.NoError(t, postgres.NewStore(pool).Replace(ctx, data))

	got, err := postgres.NewSourceFromPool(pool).Load(ctx)
	require.NoError(t, err)
	ids := make([]int, 0, len(got.Races))
	for _, r := range got.Races {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{10, 11, 12}, ids)
	assert.Empty(t, got.Results)
}

func TestClear(t *testing.T) {
	pool := testdb.InitTestDB()
	ctx := context.Background()
	store := postgres.NewStore(pool)
	require.NoError(t, store.Replace(ctx, basedata.SampleSeason().Data()))
	require.NoError(t, store.Clear(ctx))

	got, err := postgres.NewSourceFromPool(pool).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Races)
	assert.Empty(t, got.Drivers)
	assert.Equal(t, "postgres", postgres.NewSourceFromPool(pool).Name())
}
