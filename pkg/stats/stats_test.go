//nolint:funlen // ok for tests
package stats

import (
	"cmp"
	"context"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	driver string
	year   int
	round  int
	points float64
}

var sampleEntries = []entry{
	{driver: "b", year: 2022, round: 1, points: 10},
	{driver: "a", year: 2022, round: 1, points: 25},
	{driver: "a", year: 2022, round: 2, points: 18},
	{driver: "b", year: 2022, round: 2, points: 25},
	{driver: "c", year: 2022, round: 2, points: 1},
	{driver: "a", year: 2023, round: 1, points: 0},
}

func TestGroupByOrdered(t *testing.T) {
	groups := GroupByOrdered(sampleEntries, func(e entry) string { return e.driver })
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"a", "b", "c"},
		[]string{groups[0].Key, groups[1].Key, groups[2].Key})
	assert.Equal(t, 3, groups[0].Count())
	// input order is kept within a group
	assert.Equal(t, []float64{25, 18, 0}, []float64{
		groups[0].Rows[0].points, groups[0].Rows[1].points, groups[0].Rows[2].points,
	})
	assert.InDelta(t, 43.0, SumBy(groups[0].Rows, func(e entry) float64 { return e.points }), 1e-9)
	assert.InDelta(t, 17.5, AvgBy(groups[1].Rows, func(e entry) float64 { return e.points }), 1e-9)
	assert.Equal(t, 2, CountBy(groups[0].Rows, func(e entry) bool { return e.year == 2022 }))
}

func TestGroupByCompositeKey(t *testing.T) {
	type key struct {
		year  int
		round int
	}
	groups := GroupBy(sampleEntries,
		func(e entry) key { return key{e.year, e.round} },
		func(a, b key) int { return cmp.Or(cmp.Compare(a.year, b.year), cmp.Compare(a.round, b.round)) })
	got := make([]key, 0, len(groups))
	for _, g := range groups {
		got = append(got, g.Key)
	}
	want := []key{{2022, 1}, {2022, 2}, {2023, 1}}
	if diff := gocmp.Diff(want, got, gocmp.AllowUnexported(key{})); diff != "" {
		t.Errorf("GroupBy keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMinSample(t *testing.T) {
	groups := GroupByOrdered(sampleEntries, func(e entry) string { return e.driver })
	tests := []struct {
		name string
		min  int
		want []string
	}{
		{name: "no threshold", min: 0, want: []string{"a", "b", "c"}},
		{name: "two", min: 2, want: []string{"a", "b"}},
		{name: "three", min: 3, want: []string{"a"}},
		{name: "too high", min: 4, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, g := range MinSample(groups, tt.min) {
				assert.GreaterOrEqual(t, g.Count(), tt.min)
				got = append(got, g.Key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPct(t *testing.T) {
	tests := []struct {
		name   string
		num    int
		den    int
		places int32
		want   float64
	}{
		{name: "exact", num: 3, den: 10, places: 1, want: 30.0},
		{name: "third", num: 1, den: 3, places: 1, want: 33.3},
		{name: "two thirds", num: 2, den: 3, places: 1, want: 66.7},
		{name: "finer", num: 2, den: 3, places: 2, want: 66.67},
		{name: "half up", num: 1, den: 8, places: 1, want: 12.5},
		{name: "half up 0dp", num: 1, den: 8, places: 0, want: 13},
		{name: "zero denominator", num: 1, den: 0, places: 1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Pct(tt.num, tt.den, tt.places), 1e-9)
		})
	}
}

func TestRoundAndRatio(t *testing.T) {
	assert.InDelta(t, 2.35, Round(2.345, 2), 1e-9)
	assert.InDelta(t, -2.35, Round(-2.345, 2), 1e-9)
	assert.InDelta(t, 0.13, Ratio(1, 8, 2), 1e-9)
	assert.InDelta(t, 0.0, Ratio(1, 0, 2), 1e-9)
}

func TestTopNByPartition(t *testing.T) {
	// rank by points desc, ties keep input order
	groups := TopNByPartition(sampleEntries,
		func(e entry) int { return e.round },
		cmp.Compare[int],
		func(a, b entry) int { return cmp.Compare(b.points, a.points) },
		2)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Key)
	assert.Equal(t, []string{"a", "b"}, []string{groups[0].Rows[0].driver, groups[0].Rows[1].driver})
	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, []string{"b", "a"}, []string{groups[1].Rows[0].driver, groups[1].Rows[1].driver})

	ties := []entry{
		{driver: "x", round: 1, points: 5},
		{driver: "y", round: 1, points: 5},
		{driver: "z", round: 1, points: 5},
	}
	tg := TopNByPartition(ties,
		func(e entry) int { return e.round },
		cmp.Compare[int],
		func(a, b entry) int { return cmp.Compare(b.points, a.points) },
		2)
	assert.Equal(t, []string{"x", "y"}, []string{tg[0].Rows[0].driver, tg[0].Rows[1].driver})
}

func TestRollingWindow(t *testing.T) {
	newerFirst := func(a, b entry) int {
		return cmp.Or(cmp.Compare(b.year, a.year), cmp.Compare(b.round, a.round))
	}
	groups := RollingWindow(sampleEntries,
		func(e entry) string { return e.driver },
		cmp.Compare[string],
		newerFirst,
		2)
	require.Len(t, groups, 3)
	want := []entry{
		{driver: "a", year: 2023, round: 1, points: 0},
		{driver: "a", year: 2022, round: 2, points: 18},
	}
	if diff := gocmp.Diff(want, groups[0].Rows, gocmp.AllowUnexported(entry{})); diff != "" {
		t.Errorf("RollingWindow mismatch (-want +got):\n%s", diff)
	}
	for _, g := range groups {
		assert.LessOrEqual(t, g.Count(), 2)
	}
	assert.Len(t, groups[2].Rows, 1)
}

func TestCollect(t *testing.T) {
	groups := GroupByOrdered(sampleEntries, func(e entry) string { return e.driver })
	got, err := Collect(context.Background(), groups, func(g Group[string, entry]) (string, bool) {
		return g.Key, g.Key != "b"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err = Collect(ctx, groups, func(g Group[string, entry]) (string, bool) {
		return g.Key, true
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestLimit(t *testing.T) {
	rows := []int{1, 2, 3}
	assert.Equal(t, []int{1, 2}, Limit(rows, 2))
	assert.Equal(t, rows, Limit(rows, 0))
	assert.Equal(t, rows, Limit(rows, 5))
	assert.Empty(t, Limit([]int{}, 2))
}
