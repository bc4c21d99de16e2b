//nolint:whitespace,lll,funlen // ok for tests
package dataset_test

import (
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gt "gotest.tools/v3/assert"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/model"
	"github.com/f1stats/f1stats-service/testsupport/basedata"
)

func TestLatestSeason(t *testing.T) {
	gt.Equal(t, 2023, basedata.SampleSeason().Build().LatestSeason())
	gt.Equal(t, 0, dataset.New(&dataset.Data{}).LatestSeason())
}

func TestRacesAreChronological(t *testing.T) {
	b := basedata.NewBuilder().
		Circuit(1, "C", "X").
		Race(3, 2021, 1, 1).
		Race(1, 2021, 2, 1).
		Race(2, 2020, 5, 1)
	got := lo.Map(b.Build().Races(dataset.Filter{}), func(r model.Race, _ int) int { return r.ID })
	assert.Equal(t, []int{2, 3, 1}, got)

	got = lo.Map(b.Build().Races(dataset.Filter{Season: omit.From(2021)}), func(r model.Race, _ int) int { return r.ID })
	assert.Equal(t, []int{3, 1}, got)
}

func TestResultsFilter(t *testing.T) {
	ds := basedata.SampleSeason().Build()
	tests := []struct {
		name   string
		filter dataset.Filter
		want   int
	}{
		{name: "no filter", filter: dataset.Filter{}, want: 12},
		{name: "season", filter: dataset.Filter{Season: omit.From(2023)}, want: 12},
		{name: "other season", filter: dataset.Filter{Season: omit.From(2022)}, want: 0},
		{name: "driver", filter: dataset.Filter{DriverID: omit.From(basedata.DriverPerez)}, want: 3},
		{name: "circuit", filter: dataset.Filter{CircuitID: omit.From(basedata.CircuitJeddah)}, want: 4},
		{name: "constructor", filter: dataset.Filter{ConstructorID: omit.From(basedata.ConstructorMerc)}, want: 6},
		{
			name: "combined",
			filter: dataset.Filter{
				CircuitID:     omit.From(basedata.CircuitJeddah),
				ConstructorID: omit.From(basedata.ConstructorMerc),
			},
			want: 2,
		},
		{name: "unknown driver", filter: dataset.Filter{DriverID: omit.From(4711)}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ds.Results(tt.filter), tt.want)
		})
	}
}

func TestResultsJoin(t *testing.T) {
	ds := basedata.SampleSeason().Build()
	rows := ds.Results(dataset.Filter{DriverID: omit.From(basedata.DriverRussell)})
	require.Len(t, rows, 3)

	r := rows[0]
	assert.Equal(t, "George Russell", r.Driver.Name())
	assert.Equal(t, "Mercedes", r.Constructor.Name)
	assert.Equal(t, 2023, r.Race.Year)
	assert.Equal(t, 1, r.Race.Round)
	assert.True(t, r.HasStatus)
	assert.Equal(t, "Engine", r.Status.Status)
	assert.False(t, r.Classified())
}

func TestDanglingReferencesAreSkipped(t *testing.T) {
	b := basedata.SampleSeason()
	b.AddResult(model.Result{RaceID: 4711, DriverID: basedata.DriverPerez, ConstructorID: basedata.ConstructorRBR, StatusID: 1}).
		AddResult(model.Result{RaceID: 1098, DriverID: 4711, ConstructorID: basedata.ConstructorRBR, StatusID: 1}).
		AddResult(model.Result{RaceID: 1098, DriverID: basedata.DriverPerez, ConstructorID: 4711, StatusID: 1}).
		AddResult(model.Result{RaceID: 1098, DriverID: basedata.DriverPerez, ConstructorID: basedata.ConstructorRBR, StatusID: 4711}).
		Pit(4711, basedata.DriverPerez, 1, 1, 20000).
		Pit(1098, 4711, 1, 1, 20000).
		Lap(1098, 4711, 1, 1, 90000).
		Quali(1098, 4711, basedata.ConstructorRBR, 1, "", "", "").
		DriverStanding(4711, basedata.DriverPerez, 1, 1, 1).
		ConstructorStanding(1098, 4711, 1, 1, 1)
	ds := b.Build()

	results := ds.Results(dataset.Filter{})
	assert.Len(t, results, 13, "only the unknown status is kept")
	assert.Equal(t, 1, lo.CountBy(results, func(r dataset.ResultRow) bool { return !r.HasStatus }))
	assert.Len(t, ds.PitStops(dataset.Filter{}), 12)
	assert.Len(t, ds.LapTimes(dataset.Filter{}), 7)
	assert.Len(t, ds.Qualifying(dataset.Filter{}), 12)
	assert.Len(t, ds.DriverStandings(dataset.Filter{}), 12)
	assert.Len(t, ds.ConstructorStandings(dataset.Filter{}), 6)
}

func TestQualifyingOrder(t *testing.T) {
	ds := basedata.SampleSeason().Build()
	rows := ds.Qualifying(dataset.Filter{Season: omit.From(2023)})
	require.Len(t, rows, 12)
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.RaceID == cur.RaceID {
			assert.Less(t, prev.Position, cur.Position)
		} else {
			assert.Negative(t, prev.Race.Compare(cur.Race))
		}
	}
}

func TestLookups(t *testing.T) {
	ds := basedata.SampleSeason().Build()
	c, ok := ds.Circuit(basedata.CircuitBahrain)
	require.True(t, ok)
	assert.Equal(t, "Bahrain", c.Country)
	_, ok = ds.Driver(4711)
	assert.False(t, ok)
	s, ok := ds.Status(basedata.StatusPlusOneLap)
	require.True(t, ok)
	assert.Equal(t, "+1 Lap", s.Status)
	assert.Equal(t, 12, ds.Counts()["results"])
}
