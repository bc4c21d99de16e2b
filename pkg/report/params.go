// Package report contains the analytical reports. Every report is a pure
// function over an immutable dataset snapshot returning one typed row per
// output record, ordered by an explicit sort chain that ends with an id.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
)

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrUnknownReport    = errors.New("unknown report")
)

// parameter names as used in error messages and the catalog
const (
	ParamSeason        = "season"
	ParamDriver        = "driverId"
	ParamDriver2       = "driver2Id"
	ParamCircuit       = "circuitId"
	ParamConstructor   = "constructorId"
	ParamWindow        = "window"
	ParamLimit         = "limit"
	ParamMinSample     = "minSample"
	MaxPointsPerRace   = 26
	PitStopOutlierMs   = 40000
	statusFinished     = "Finished"
	lappedStatusPrefix = "+"
)

// Params are the optional filter and tuning parameters of a report run.
// Window, Limit and MinSample use the report default when 0.
type Params struct {
	Season        omit.Val[int]
	DriverID      omit.Val[int]
	Driver2ID     omit.Val[int]
	CircuitID     omit.Val[int]
	ConstructorID omit.Val[int]
	Window        int
	Limit         int
	MinSample     int
}

// IsDNF reports whether status denotes a retirement. "Finished" and the
// "+N Lap(s)" family are classified finishes.
func IsDNF(status string) bool {
	return status != statusFinished && !strings.HasPrefix(status, lappedStatusPrefix)
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, name)
}

// require checks the presence of the named id parameters.
func (p Params) require(names ...string) error {
	for _, name := range names {
		var set bool
		switch name {
		case ParamSeason:
			_, set = p.Season.Get()
		case ParamDriver:
			_, set = p.DriverID.Get()
		case ParamDriver2:
			_, set = p.Driver2ID.Get()
		case ParamCircuit:
			_, set = p.CircuitID.Get()
		case ParamConstructor:
			_, set = p.ConstructorID.Get()
		}
		if !set {
			return missing(name)
		}
	}
	return nil
}

// filter returns the equality filter for all given id parameters.
func (p Params) filter() dataset.Filter {
	return dataset.Filter{
		Season:        p.Season,
		DriverID:      p.DriverID,
		CircuitID:     p.CircuitID,
		ConstructorID: p.ConstructorID,
	}
}

// seasonFilter is filter with the season defaulting to the latest season
// of the dataset.
func (p Params) seasonFilter(ds *dataset.Dataset) dataset.Filter {
	f := p.filter()
	f.Season = omit.From(p.season(ds))
	return f
}

func (p Params) season(ds *dataset.Dataset) int {
	if s, ok := p.Season.Get(); ok {
		return s
	}
	return ds.LatestSeason()
}

func (p Params) window(def int) int {
	return lo.Ternary(p.Window > 0, p.Window, def)
}

func (p Params) limit(def int) int {
	return lo.Ternary(p.Limit > 0, p.Limit, def)
}

func (p Params) minSample(def int) int {
	return lo.Ternary(p.MinSample > 0, p.MinSample, def)
}
