// Package dataset holds an immutable, in-memory snapshot of the historical
// results database together with the equality filters and id joins the
// report generators need.
package dataset

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/model"
)

// Data is the raw record collection delivered by a Source.
type Data struct {
	Races                []model.Race
	Circuits             []model.Circuit
	Drivers              []model.Driver
	Constructors         []model.Constructor
	Statuses             []model.Status
	Results              []model.Result
	Qualifying           []model.Qualifying
	PitStops             []model.PitStop
	LapTimes             []model.LapTime
	DriverStandings      []model.DriverStanding
	ConstructorStandings []model.ConstructorStanding
}

// Dataset is a read-only view on Data. All accessors return fresh slices,
// the underlying records are never modified after New returns.
type Dataset struct {
	data         Data
	races        map[int]model.Race
	circuits     map[int]model.Circuit
	drivers      map[int]model.Driver
	constructors map[int]model.Constructor
	statuses     map[int]model.Status
	latestSeason int
}

func New(d *Data) *Dataset {
	ds := &Dataset{
		data:         *d,
		races:        lo.KeyBy(d.Races, func(r model.Race) int { return r.ID }),
		circuits:     lo.KeyBy(d.Circuits, func(c model.Circuit) int { return c.ID }),
		drivers:      lo.KeyBy(d.Drivers, func(dr model.Driver) int { return dr.ID }),
		constructors: lo.KeyBy(d.Constructors, func(c model.Constructor) int { return c.ID }),
		statuses:     lo.KeyBy(d.Statuses, func(s model.Status) int { return s.ID }),
	}
	for i := range d.Races {
		ds.latestSeason = max(ds.latestSeason, d.Races[i].Year)
	}
	return ds
}

func (ds *Dataset) Race(id int) (model.Race, bool) {
	r, ok := ds.races[id]
	return r, ok
}

func (ds *Dataset) Circuit(id int) (model.Circuit, bool) {
	c, ok := ds.circuits[id]
	return c, ok
}

func (ds *Dataset) Driver(id int) (model.Driver, bool) {
	d, ok := ds.drivers[id]
	return d, ok
}

func (ds *Dataset) Constructor(id int) (model.Constructor, bool) {
	c, ok := ds.constructors[id]
	return c, ok
}

func (ds *Dataset) Status(id int) (model.Status, bool) {
	s, ok := ds.statuses[id]
	return s, ok
}

// LatestSeason returns the most recent year with at least one race, 0 if
// the dataset is empty.
func (ds *Dataset) LatestSeason() int {
	return ds.latestSeason
}

// Races returns the races matching f in chronological order.
func (ds *Dataset) Races(f Filter) []model.Race {
	ret := lo.Filter(ds.data.Races, func(r model.Race, _ int) bool {
		return f.matchRace(r)
	})
	slices.SortFunc(ret, func(a, b model.Race) int {
		return cmp.Or(a.Compare(b), cmp.Compare(a.ID, b.ID))
	})
	return ret
}

// Counts returns the number of records per collection. Used for logging.
func (ds *Dataset) Counts() map[string]int {
	return map[string]int{
		"races":                 len(ds.data.Races),
		"circuits":              len(ds.data.Circuits),
		"drivers":               len(ds.data.Drivers),
		"constructors":          len(ds.data.Constructors),
		"status":                len(ds.data.Statuses),
		"results":               len(ds.data.Results),
		"qualifying":            len(ds.data.Qualifying),
		"pit_stops":             len(ds.data.PitStops),
		"lap_times":             len(ds.data.LapTimes),
		"driver_standings":      len(ds.data.DriverStandings),
		"constructor_standings": len(ds.data.ConstructorStandings),
	}
}
