//nolint:whitespace,lll,funlen // ok for tests
package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-service/testsupport/basedata"
)

func TestHeadToHead(t *testing.T) {
	ds := sample()
	tests := []struct {
		name   string
		d1, d2 int
		want   []HeadToHeadRow
	}{
		{
			name: "both always classified",
			d1:   basedata.DriverVerstappen,
			d2:   basedata.DriverPerez,
			want: []HeadToHeadRow{{
				Driver1: "Max Verstappen", Driver1ID: 830, Driver2: "Sergio Pérez", Driver2ID: 815,
				SharedRaces: 3, ComparedRaces: 3, Driver1Ahead: 2, Driver2Ahead: 1,
				Driver1Points: 69, Driver2Points: 43, Driver1Wins: 2, Driver2Wins: 1,
			}},
		},
		{
			name: "retirements count as shared but not compared",
			d1:   basedata.DriverHamilton,
			d2:   basedata.DriverRussell,
			want: []HeadToHeadRow{{
				Driver1: "Lewis Hamilton", Driver1ID: 1, Driver2: "George Russell", Driver2ID: 847,
				SharedRaces: 3, ComparedRaces: 1, Driver1Ahead: 0, Driver2Ahead: 1,
				Driver1Points: 38, Driver2Points: 12, Driver1Wins: 0, Driver2Wins: 0,
			}},
		},
		{name: "identical drivers", d1: 1, d2: 1, want: []HeadToHeadRow{}},
		{name: "unknown driver", d1: 1, d2: 4711, want: []HeadToHeadRow{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HeadToHead(bg, ds, Params{DriverID: optID(tt.d1), Driver2ID: optID(tt.d2)})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("HeadToHead() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeadToHeadSymmetry(t *testing.T) {
	ds := sample()
	drivers := []int{
		basedata.DriverVerstappen, basedata.DriverPerez,
		basedata.DriverHamilton, basedata.DriverRussell,
	}
	for _, a := range drivers {
		for _, b := range drivers {
			if a == b {
				continue
			}
			ab, err := HeadToHead(bg, ds, Params{DriverID: optID(a), Driver2ID: optID(b)})
			require.NoError(t, err)
			ba, err := HeadToHead(bg, ds, Params{DriverID: optID(b), Driver2ID: optID(a)})
			require.NoError(t, err)
			require.Len(t, ab, 1)
			require.Len(t, ba, 1)

			x, y := ab[0], ba[0]
			assert.Equal(t, x.SharedRaces, y.SharedRaces)
			assert.Equal(t, x.ComparedRaces, y.ComparedRaces)
			assert.Equal(t, x.Driver1Ahead, y.Driver2Ahead)
			assert.Equal(t, x.Driver2Ahead, y.Driver1Ahead)
			assert.Equal(t, x.Driver1Points, y.Driver2Points)
			assert.Equal(t, x.Driver2Points, y.Driver1Points)
			assert.Equal(t, x.Driver1Wins, y.Driver2Wins)
			assert.Equal(t, x.Driver2Wins, y.Driver1Wins)
		}
	}
}

func TestHeadToHeadMissingParameter(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{name: "none", params: Params{}},
		{name: "first only", params: Params{DriverID: optID(1)}},
		{name: "second only", params: Params{Driver2ID: optID(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HeadToHead(bg, sample(), tt.params)
			require.ErrorIs(t, err, ErrMissingParameter)
			assert.Nil(t, got)
		})
	}
}

func TestHeadToHeadSeasonFilter(t *testing.T) {
	got, err := HeadToHead(bg, sample(), Params{
		Season:    optID(2022),
		DriverID:  optID(basedata.DriverVerstappen),
		Driver2ID: optID(basedata.DriverPerez),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].SharedRaces)
}
