// Package basedata provides a fluent builder for small, hand written
// datasets and a sample season used by tests.
package basedata

import (
	"fmt"
	"time"

	"github.com/aarondl/opt/null"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/model"
)

// status ids as used by the Ergast database
const (
	StatusFinished     = 1
	StatusDisqualified = 2
	StatusAccident     = 3
	StatusCollision    = 4
	StatusEngine       = 5
	StatusGearbox      = 6
	StatusPlusOneLap   = 11
	StatusPlusTwoLaps  = 12
)

type Builder struct {
	data       dataset.Data
	nextResult int
	nextQuali  int
}

func NewBuilder() *Builder {
	b := &Builder{nextResult: 1, nextQuali: 1}
	b.data.Statuses = []model.Status{
		{ID: StatusFinished, Status: "Finished"},
		{ID: StatusDisqualified, Status: "Disqualified"},
		{ID: StatusAccident, Status: "Accident"},
		{ID: StatusCollision, Status: "Collision"},
		{ID: StatusEngine, Status: "Engine"},
		{ID: StatusGearbox, Status: "Gearbox"},
		{ID: StatusPlusOneLap, Status: "+1 Lap"},
		{ID: StatusPlusTwoLaps, Status: "+2 Laps"},
	}
	return b
}

func (b *Builder) Driver(id int, forename, surname string) *Builder {
	b.data.Drivers = append(b.data.Drivers, model.Driver{
		ID: id, Forename: forename, Surname: surname, Nationality: "Unknown",
	})
	return b
}

func (b *Builder) Constructor(id int, name string) *Builder {
	b.data.Constructors = append(b.data.Constructors, model.Constructor{
		ID: id, Name: name, Nationality: "Unknown",
	})
	return b
}

func (b *Builder) Circuit(id int, name, country string) *Builder {
	b.data.Circuits = append(b.data.Circuits, model.Circuit{
		ID: id, Name: name, Location: name, Country: country,
	})
	return b
}

// Race adds a race named "<year> Race <round>".
func (b *Builder) Race(id, year, round, circuitID int) *Builder {
	b.data.Races = append(b.data.Races, model.Race{
		ID:        id,
		Year:      year,
		Round:     round,
		CircuitID: circuitID,
		Name:      fmt.Sprintf("%d Race %d", year, round),
		Date:      time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 14*(round-1)),
	})
	return b
}

// Finish adds a classified result with status Finished.
func (b *Builder) Finish(raceID, driverID, constructorID, grid, pos int, points float64) *Builder {
	return b.AddResult(model.Result{
		RaceID: raceID, DriverID: driverID, ConstructorID: constructorID,
		Grid: grid, Position: null.From(pos), Points: points, StatusID: StatusFinished,
	})
}

// Lapped adds a classified result with a "+N Lap(s)" status.
func (b *Builder) Lapped(raceID, driverID, constructorID, grid, pos, statusID int) *Builder {
	return b.AddResult(model.Result{
		RaceID: raceID, DriverID: driverID, ConstructorID: constructorID,
		Grid: grid, Position: null.From(pos), StatusID: statusID,
	})
}

// Retire adds a non classified result.
func (b *Builder) Retire(raceID, driverID, constructorID, grid, statusID int) *Builder {
	return b.AddResult(model.Result{
		RaceID: raceID, DriverID: driverID, ConstructorID: constructorID,
		Grid: grid, StatusID: statusID,
	})
}

// FastestLap marks the latest result of driver in race with fastest lap rank 1.
func (b *Builder) FastestLap(raceID, driverID int) *Builder {
	for i := len(b.data.Results) - 1; i >= 0; i-- {
		r := &b.data.Results[i]
		if r.RaceID == raceID && r.DriverID == driverID {
			r.Rank = null.From(1)
			break
		}
	}
	return b
}

// AddResult adds r, assigning a result id if r has none.
func (b *Builder) AddResult(r model.Result) *Builder {
	if r.ID == 0 {
		r.ID = b.nextResult
	}
	b.nextResult = max(b.nextResult, r.ID) + 1
	if r.Laps == 0 && r.Position.IsValue() {
		r.Laps = 50
	}
	b.data.Results = append(b.data.Results, r)
	return b
}

// Quali adds a qualifying entry, empty lap times are stored as null.
func (b *Builder) Quali(raceID, driverID, constructorID, pos int, q1, q2, q3 string) *Builder {
	b.data.Qualifying = append(b.data.Qualifying, model.Qualifying{
		ID: b.nextQuali, RaceID: raceID, DriverID: driverID, ConstructorID: constructorID,
		Position: pos, Q1: lapTime(q1), Q2: lapTime(q2), Q3: lapTime(q3),
	})
	b.nextQuali++
	return b
}

func lapTime(s string) null.Val[string] {
	if s == "" {
		return null.Val[string]{}
	}
	return null.From(s)
}

func (b *Builder) Pit(raceID, driverID, stop, lap, ms int) *Builder {
	b.data.PitStops = append(b.data.PitStops, model.PitStop{
		RaceID: raceID, DriverID: driverID, Stop: stop, Lap: lap, Milliseconds: ms,
	})
	return b
}

func (b *Builder) Lap(raceID, driverID, lap, pos, ms int) *Builder {
	b.data.LapTimes = append(b.data.LapTimes, model.LapTime{
		RaceID: raceID, DriverID: driverID, Lap: lap, Position: pos, Milliseconds: ms,
	})
	return b
}

func (b *Builder) DriverStanding(raceID, driverID int, points float64, pos, wins int) *Builder {
	b.data.DriverStandings = append(b.data.DriverStandings, model.DriverStanding{
		RaceID: raceID, DriverID: driverID, Points: points, Position: pos, Wins: wins,
	})
	return b
}

func (b *Builder) ConstructorStanding(raceID, constructorID int, points float64, pos, wins int) *Builder {
	b.data.ConstructorStandings = append(b.data.ConstructorStandings, model.ConstructorStanding{
		RaceID: raceID, ConstructorID: constructorID, Points: points, Position: pos, Wins: wins,
	})
	return b
}

// Data returns a copy of the collected records.
func (b *Builder) Data() *dataset.Data {
	d := b.data
	return &d
}

func (b *Builder) Build() *dataset.Dataset {
	return dataset.New(b.Data())
}
