package dataset

import (
	"cmp"
	"slices"

	"github.com/f1stats/f1stats-service/pkg/model"
)

// ResultRow is a Result joined with its referenced entities.
// HasStatus is false if the status id could not be resolved.
type ResultRow struct {
	model.Result
	Race        model.Race
	Driver      model.Driver
	Constructor model.Constructor
	Status      model.Status
	HasStatus   bool
}

type QualifyingRow struct {
	model.Qualifying
	Race        model.Race
	Driver      model.Driver
	Constructor model.Constructor
}

type PitStopRow struct {
	model.PitStop
	Race   model.Race
	Driver model.Driver
}

type LapTimeRow struct {
	model.LapTime
	Race   model.Race
	Driver model.Driver
}

type DriverStandingRow struct {
	model.DriverStanding
	Race   model.Race
	Driver model.Driver
}

type ConstructorStandingRow struct {
	model.ConstructorStanding
	Race        model.Race
	Constructor model.Constructor
}

func byRace(a, b model.Race) int {
	return cmp.Or(a.Compare(b), cmp.Compare(a.ID, b.ID))
}

// Results returns the results matching f joined with race, driver,
// constructor and status, ordered by race then result id.
// Results referencing an unknown race, driver or constructor are skipped.
func (ds *Dataset) Results(f Filter) []ResultRow {
	ret := make([]ResultRow, 0)
	for _, res := range ds.data.Results {
		race, ok := ds.races[res.RaceID]
		if !ok || !f.matchEntry(race, res.DriverID, res.ConstructorID) {
			continue
		}
		driver, okD := ds.drivers[res.DriverID]
		constructor, okC := ds.constructors[res.ConstructorID]
		if !okD || !okC {
			continue
		}
		status, okS := ds.statuses[res.StatusID]
		ret = append(ret, ResultRow{
			Result:      res,
			Race:        race,
			Driver:      driver,
			Constructor: constructor,
			Status:      status,
			HasStatus:   okS,
		})
	}
	slices.SortStableFunc(ret, func(a, b ResultRow) int {
		return cmp.Or(byRace(a.Race, b.Race), cmp.Compare(a.ID, b.ID))
	})
	return ret
}

// Qualifying returns the qualifying entries matching f ordered by race and position.
func (ds *Dataset) Qualifying(f Filter) []QualifyingRow {
	ret := make([]QualifyingRow, 0)
	for _, q := range ds.data.Qualifying {
		race, ok := ds.races[q.RaceID]
		if !ok || !f.matchEntry(race, q.DriverID, q.ConstructorID) {
			continue
		}
		driver, okD := ds.drivers[q.DriverID]
		constructor, okC := ds.constructors[q.ConstructorID]
		if !okD || !okC {
			continue
		}
		ret = append(ret, QualifyingRow{
			Qualifying: q, Race: race, Driver: driver, Constructor: constructor,
		})
	}
	slices.SortStableFunc(ret, func(a, b QualifyingRow) int {
		return cmp.Or(byRace(a.Race, b.Race),
			cmp.Compare(a.Position, b.Position),
			cmp.Compare(a.ID, b.ID))
	})
	return ret
}

// PitStops returns the pit stops matching f ordered by race, driver and stop.
// The constructor filter is ignored, pit stop records carry no constructor.
func (ds *Dataset) PitStops(f Filter) []PitStopRow {
	ret := make([]PitStopRow, 0)
	for _, p := range ds.data.PitStops {
		race, ok := ds.races[p.RaceID]
		if !ok || !f.matchRace(race) || !matches(f.DriverID, p.DriverID) {
			continue
		}
		driver, okD := ds.drivers[p.DriverID]
		if !okD {
			continue
		}
		ret = append(ret, PitStopRow{PitStop: p, Race: race, Driver: driver})
	}
	slices.SortStableFunc(ret, func(a, b PitStopRow) int {
		return cmp.Or(byRace(a.Race, b.Race),
			cmp.Compare(a.DriverID, b.DriverID),
			cmp.Compare(a.Stop, b.Stop))
	})
	return ret
}

// LapTimes returns the lap times matching f ordered by race, driver and lap.
// The constructor filter is ignored.
func (ds *Dataset) LapTimes(f Filter) []LapTimeRow {
	ret := make([]LapTimeRow, 0)
	for _, l := range ds.data.LapTimes {
		race, ok := ds.races[l.RaceID]
		if !ok || !f.matchRace(race) || !matches(f.DriverID, l.DriverID) {
			continue
		}
		driver, okD := ds.drivers[l.DriverID]
		if !okD {
			continue
		}
		ret = append(ret, LapTimeRow{LapTime: l, Race: race, Driver: driver})
	}
	slices.SortStableFunc(ret, func(a, b LapTimeRow) int {
		return cmp.Or(byRace(a.Race, b.Race),
			cmp.Compare(a.DriverID, b.DriverID),
			cmp.Compare(a.Lap, b.Lap))
	})
	return ret
}

// DriverStandings returns the standings matching f ordered by race and position.
func (ds *Dataset) DriverStandings(f Filter) []DriverStandingRow {
	ret := make([]DriverStandingRow, 0)
	for _, s := range ds.data.DriverStandings {
		race, ok := ds.races[s.RaceID]
		if !ok || !f.matchRace(race) || !matches(f.DriverID, s.DriverID) {
			continue
		}
		driver, okD := ds.drivers[s.DriverID]
		if !okD {
			continue
		}
		ret = append(ret, DriverStandingRow{DriverStanding: s, Race: race, Driver: driver})
	}
	slices.SortStableFunc(ret, func(a, b DriverStandingRow) int {
		return cmp.Or(byRace(a.Race, b.Race),
			cmp.Compare(a.Position, b.Position),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return ret
}

// ConstructorStandings returns the standings matching f ordered by race and position.
func (ds *Dataset) ConstructorStandings(f Filter) []ConstructorStandingRow {
	ret := make([]ConstructorStandingRow, 0)
	for _, s := range ds.data.ConstructorStandings {
		race, ok := ds.races[s.RaceID]
		if !ok || !f.matchRace(race) || !matches(f.ConstructorID, s.ConstructorID) {
			continue
		}
		constructor, okC := ds.constructors[s.ConstructorID]
		if !okC {
			continue
		}
		ret = append(ret, ConstructorStandingRow{
			ConstructorStanding: s, Race: race, Constructor: constructor,
		})
	}
	slices.SortStableFunc(ret, func(a, b ConstructorStandingRow) int {
		return cmp.Or(byRace(a.Race, b.Race),
			cmp.Compare(a.Position, b.Position),
			cmp.Compare(a.ConstructorID, b.ConstructorID))
	})
	return ret
}
