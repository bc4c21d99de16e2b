package dataset

import (
	"github.com/aarondl/opt/omit"

	"github.com/f1stats/f1stats-service/pkg/model"
)

// Filter restricts records by equality. An unset field means no restriction.
type Filter struct {
	Season        omit.Val[int]
	DriverID      omit.Val[int]
	CircuitID     omit.Val[int]
	ConstructorID omit.Val[int]
}

func matches(f omit.Val[int], v int) bool {
	want, ok := f.Get()
	return !ok || want == v
}

func (f Filter) matchRace(r model.Race) bool {
	return matches(f.Season, r.Year) && matches(f.CircuitID, r.CircuitID)
}

func (f Filter) matchEntry(r model.Race, driverID, constructorID int) bool {
	return f.matchRace(r) &&
		matches(f.DriverID, driverID) &&
		matches(f.ConstructorID, constructorID)
}
