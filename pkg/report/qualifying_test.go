//nolint:whitespace,lll,funlen // ok for tests
package report

import (
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/model"
	"github.com/f1stats/f1stats-service/testsupport/basedata"
)

func TestQualifyingProgression(t *testing.T) {
	got, err := QualifyingProgression(bg, sample(), Params{})
	require.NoError(t, err)
	want := []QualifyingProgressionRow{
		{Driver: "Max Verstappen", DriverID: 830, Team: "Red Bull", Sessions: 3, MadeQ2: 2, MadeQ3: 2, Q3Rate: 66.7, Poles: 2},
		{Driver: "Sergio Pérez", DriverID: 815, Team: "Red Bull", Sessions: 3, MadeQ2: 2, MadeQ3: 2, Q3Rate: 66.7, Poles: 1},
		{Driver: "George Russell", DriverID: 847, Team: "Mercedes", Sessions: 3, MadeQ2: 3, MadeQ3: 3, Q3Rate: 100, Poles: 0},
		{Driver: "Lewis Hamilton", DriverID: 1, Team: "Mercedes", Sessions: 3, MadeQ2: 3, MadeQ3: 3, Q3Rate: 100, Poles: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QualifyingProgression() mismatch (-want +got):\n%s", diff)
	}
}

func TestQualifyingProgressionTeamOfLatestSession(t *testing.T) {
	b := twoDriverGrid(3).Constructor(2, "New Team")
	b.Quali(1, 1, 1, 1, "1:30.000", "1:29.000", "1:28.000").
		Quali(2, 1, 2, 1, "1:30.000", "1:29.000", "1:28.000").
		Quali(3, 1, 1, 1, "1:30.000", "1:29.000", "1:28.000")

	got, err := QualifyingProgression(bg, b.Build(), Params{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Team", got[0].Team)
}

func TestQualifyingProgressionBlankTimes(t *testing.T) {
	data := twoDriverGrid(2).Quali(1, 1, 1, 1, "1:30.000", "1:29.000", "1:28.000").Data()
	// whitespace only times as found in some dumps
	data.Qualifying = append(data.Qualifying, model.Qualifying{
		ID: 2, RaceID: 2, DriverID: 1, ConstructorID: 1, Position: 16,
		Q1: null.From("1:31.000"), Q2: null.From("  "), Q3: null.From("\t"),
	})
	got, err := QualifyingProgression(bg, dataset.New(data), Params{Season: optID(2020), MinSample: 1})
	require.NoError(t, err)
	want := []QualifyingProgressionRow{
		{Driver: "Pole Sitter", DriverID: 1, Team: "Team", Sessions: 2, MadeQ2: 1, MadeQ3: 1, Q3Rate: 50, Poles: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QualifyingProgression() mismatch (-want +got):\n%s", diff)
	}
}

// teammates creates sessions qualifying sessions for two teammates, the
// last session ends in a tie.
func teammates(sessions int) *basedata.Builder {
	b := twoDriverGrid(sessions)
	for i := 1; i <= sessions; i++ {
		switch {
		case i == sessions:
			b.Quali(i, 1, 1, 3, "", "", "").Quali(i, 2, 1, 3, "", "", "")
		case i%2 == 0:
			b.Quali(i, 2, 1, 1, "", "", "").Quali(i, 1, 1, 2, "", "", "")
		default:
			b.Quali(i, 1, 1, 1, "", "", "").Quali(i, 2, 1, 2, "", "", "")
		}
	}
	return b
}

func TestTeammateBattlesThreshold(t *testing.T) {
	got, err := TeammateBattles(bg, teammates(3).Build(), Params{})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = TeammateBattles(bg, teammates(5).Build(), Params{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, 5, r.HeadToHeads)
	assert.Equal(t, 1, r.Driver1ID)
	assert.Equal(t, 2, r.Driver2ID)
	assert.Equal(t, 2, r.Driver1Wins)
	assert.Equal(t, 2, r.Driver2Wins)
	assert.LessOrEqual(t, r.Driver1Wins+r.Driver2Wins, 5)
}

func TestTeammateBattlesSample(t *testing.T) {
	ds := sample()
	got, err := TeammateBattles(bg, ds, Params{MinSample: 3})
	require.NoError(t, err)
	want := []TeammateBattleRow{
		{
			Team: "Mercedes", ConstructorID: 131,
			Driver1: "Lewis Hamilton", Driver1ID: 1, Driver2: "George Russell", Driver2ID: 847,
			HeadToHeads: 3, Driver1Wins: 0, Driver2Wins: 3,
		},
		{
			Team: "Red Bull", ConstructorID: 9,
			Driver1: "Sergio Pérez", Driver1ID: 815, Driver2: "Max Verstappen", Driver2ID: 830,
			HeadToHeads: 3, Driver1Wins: 1, Driver2Wins: 2,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TeammateBattles() mismatch (-want +got):\n%s", diff)
	}

	// driver filter keeps only the pairing of that driver
	got, err = TeammateBattles(bg, ds, Params{MinSample: 3, DriverID: optID(basedata.DriverVerstappen)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Red Bull", got[0].Team)
}

func TestQualiVsRace(t *testing.T) {
	ds := sample()
	_, err := QualiVsRace(bg, ds, Params{})
	require.ErrorIs(t, err, ErrMissingParameter)

	got, err := QualiVsRace(bg, ds, Params{DriverID: optID(basedata.DriverPerez)})
	require.NoError(t, err)
	assert.Equal(t, []QualiVsRaceRow{
		{Race: "2023 Race 3", RaceID: 1100, Year: 2023, Round: 3, QualiPos: null.From(20), RacePos: null.From(5), Delta: null.From(15)},
		{Race: "2023 Race 2", RaceID: 1099, Year: 2023, Round: 2, QualiPos: null.From(1), RacePos: null.From(1), Delta: null.From(0)},
		{Race: "2023 Race 1", RaceID: 1098, Year: 2023, Round: 1, QualiPos: null.From(2), RacePos: null.From(2), Delta: null.From(0)},
	}, got)

	got, err = QualiVsRace(bg, ds, Params{DriverID: optID(basedata.DriverRussell), Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1100, got[0].RaceID)
	assert.Equal(t, null.From(2), got[0].QualiPos)
	assert.True(t, got[0].RacePos.IsNull())
	assert.True(t, got[0].Delta.IsNull())

	m := got[0].Map()
	v, present := m["delta"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestQualiVsRaceUnknownDriver(t *testing.T) {
	got, err := QualiVsRace(bg, sample(), Params{DriverID: optID(4711)})
	require.NoError(t, err)
	assert.Empty(t, got)
}
