package report

import (
	"context"
	"slices"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/presentation"
)

// Definition describes a catalog entry. Columns lists the output fields in
// display order, Required the parameters the report cannot run without.
type Definition struct {
	Name        string
	Description string
	Columns     []string
	Required    []string
	run         func(ctx context.Context, ds *dataset.Dataset, p Params) ([]map[string]any, error)
}

// Run executes the report and maps the rows.
func (d Definition) Run(ctx context.Context, ds *dataset.Dataset, p Params) ([]map[string]any, error) {
	if err := p.require(d.Required...); err != nil {
		return nil, err
	}
	return d.run(ctx, ds, p)
}

//nolint:whitespace // can't make both editor and linter happy
func define[T presentation.Mappable](
	name, description string,
	fn func(context.Context, *dataset.Dataset, Params) ([]T, error),
	columns []string,
	required ...string,
) Definition {
	return Definition{
		Name:        name,
		Description: description,
		Columns:     columns,
		Required:    required,
		run: func(ctx context.Context, ds *dataset.Dataset, p Params) ([]map[string]any, error) {
			rows, err := fn(ctx, ds, p)
			if err != nil {
				return nil, err
			}
			return presentation.Rows(rows), nil
		},
	}
}

//nolint:lll,funlen // catalog
var catalog = []Definition{
	define("pole-to-win", "conversion of pole positions into wins", PoleToWin,
		[]string{"driver", "driverId", "poles", "winsFromPole", "conversionRate"}),
	define("grid-performance", "average positions gained per driver", GridPerformance,
		[]string{"driver", "driverId", "races", "avg_grid", "avg_finish", "avg_positions_gained"}),
	define("qualifying-progression", "Q2/Q3 progression per driver", QualifyingProgression,
		[]string{"driver", "driverId", "team", "sessions", "made_q2", "made_q3", "q3_rate", "poles"}),
	define("fastest-laps", "fastest laps per driver", FastestLaps,
		[]string{"driver", "driverId", "races", "fastest_laps", "fastest_lap_rate"}),
	define("laps-led", "laps led per driver", LapsLed,
		[]string{"driver", "driverId", "laps_led", "races_led"}),
	define("circuit-reliability", "retirement rate per circuit", CircuitReliability,
		[]string{"circuit", "circuitId", "country", "races", "entries", "dnfs", "dnf_rate"}),
	define("dnf-causes", "most common retirement causes", DNFCauses,
		[]string{"status", "statusId", "count"}),
	define("pit-strategy", "distribution of stop counts per circuit", PitStrategy,
		[]string{"circuit", "circuitId", "stops", "count", "percentage"}),
	define("pit-efficiency", "average pit stop duration per driver", PitEfficiency,
		[]string{"driver", "driverId", "stops", "avgPitMs", "avgPitSec"}),
	define("constructor-trends", "season summary per constructor", ConstructorTrends,
		[]string{"constructor", "constructorId", "year", "races", "points", "wins", "podiums", "championship_position"}),
	define("championship-progression", "standings after each round", ChampionshipProgression,
		[]string{"driver", "driverId", "round", "race", "points", "position", "wins"}),
	define("teammate-battles", "qualifying duels between teammates", TeammateBattles,
		[]string{"team", "constructorId", "driver1", "driver1Id", "driver2", "driver2Id", "head_to_heads", "driver1_wins", "driver2_wins"}),
	define("points-efficiency", "points per race and share of maximum points", PointsEfficiency,
		[]string{"driver", "driverId", "team", "races", "total_points", "points_per_race", "points_rate"}),
	define("driver-form", "form over the most recent classified results", DriverForm,
		[]string{"driver", "driverId", "races_analyzed", "wins", "podiums", "win_rate", "podium_rate", "avg_finish", "points"}),
	define("driver-career", "career totals and rates per driver", DriverCareer,
		[]string{"driver", "driverId", "seasons", "races", "wins", "podiums", "poles", "fastest_laps", "points", "dnfs", "win_rate", "podium_rate", "pole_rate", "dnf_rate", "championships", "best_championship", "teams"}),
	define("driver-seasons", "season by season breakdown per driver", DriverSeasons,
		[]string{"driver", "driverId", "year", "season_races", "races", "wins", "podiums", "poles", "fastest_laps", "points", "dnfs", "championship_position", "teams"}),
	define("grid-conversion", "win and podium rate per starting position", GridConversion,
		[]string{"grid", "starts", "wins", "podiums", "winRate", "podiumRate"}),
	define("circuit-advantage", "circuits where a driver performs above average", CircuitAdvantage,
		[]string{"circuit", "circuitId", "country", "races", "avg_finish", "wins", "podiums", "total_points", "advantage"},
		ParamDriver),
	define("circuit-kings", "most successful drivers per circuit", CircuitKings,
		[]string{"circuit", "circuitId", "rank", "driver", "driverId", "wins", "points"}),
	define("constructor-momentum", "recent versus previous points per race", ConstructorMomentum,
		[]string{"constructor", "constructorId", "races", "recent_races", "previous_races", "recent_avg_points", "previous_avg_points", "momentum"}),
	define("head-to-head", "race comparison of two drivers", HeadToHead,
		[]string{"driver1", "driver1Id", "driver2", "driver2Id", "sharedRaces", "comparedRaces", "driver1Ahead", "driver2Ahead", "driver1Points", "driver2Points", "driver1Wins", "driver2Wins"},
		ParamDriver, ParamDriver2),
	define("quali-vs-race", "qualifying versus race position of a driver", QualiVsRace,
		[]string{"race", "raceId", "year", "round", "qualiPos", "racePos", "delta"},
		ParamDriver),
}

// Catalog returns all report definitions in display order.
func Catalog() []Definition {
	return slices.Clone(catalog)
}

// Lookup returns the definition for name.
func Lookup(name string) (Definition, bool) {
	idx := slices.IndexFunc(catalog, func(d Definition) bool { return d.Name == name })
	if idx < 0 {
		return Definition{}, false
	}
	return catalog[idx], true
}
