package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type pitRow = dataset.PitStopRow

type PitStrategyRow struct {
	Circuit    string
	CircuitID  int
	Stops      int
	Count      int
	Percentage float64
}

func (r PitStrategyRow) Map() map[string]any {
	return map[string]any{
		"circuit":    r.Circuit,
		"circuitId":  r.CircuitID,
		"stops":      r.Stops,
		"count":      r.Count,
		"percentage": r.Percentage,
	}
}

type raceDriver struct {
	raceID   int
	driverID int
}

// strategy is the number of stops a driver used in one race.
type strategy struct {
	circuitID int
	stops     int
}

// PitStrategy computes the distribution of stop counts per circuit of a
// season. The stop count of a driver in a race is the highest stop number
// recorded. Percentages are shares of all strategies at the circuit.
func PitStrategy(ctx context.Context, ds *dataset.Dataset, p Params) ([]PitStrategyRow, error) {
	perDriver := stats.GroupBy(ds.PitStops(p.seasonFilter(ds)),
		func(r pitRow) raceDriver { return raceDriver{r.RaceID, r.DriverID} },
		func(a, b raceDriver) int {
			return cmp.Or(cmp.Compare(a.raceID, b.raceID), cmp.Compare(a.driverID, b.driverID))
		})
	strategies, err := stats.Collect(ctx, perDriver, func(g stats.Group[raceDriver, pitRow]) (strategy, bool) {
		return strategy{
			circuitID: g.Rows[0].Race.CircuitID,
			stops:     lo.Max(lo.Map(g.Rows, func(r pitRow, _ int) int { return r.Stop })),
		}, true
	})
	if err != nil {
		return nil, err
	}
	circuits := stats.GroupByOrdered(strategies, func(s strategy) int { return s.circuitID })
	perCircuit, err := stats.Collect(ctx, circuits, func(g stats.Group[int, strategy]) ([]PitStrategyRow, bool) {
		circuit, ok := ds.Circuit(g.Key)
		if !ok {
			return nil, false
		}
		return lo.Map(
			stats.GroupByOrdered(g.Rows, func(s strategy) int { return s.stops }),
			func(s stats.Group[int, strategy], _ int) PitStrategyRow {
				return PitStrategyRow{
					Circuit:    circuit.Name,
					CircuitID:  circuit.ID,
					Stops:      s.Key,
					Count:      s.Count(),
					Percentage: stats.Pct(s.Count(), g.Count(), 1),
				}
			}), true
	})
	if err != nil {
		return nil, err
	}
	ret := lo.Flatten(perCircuit)
	slices.SortFunc(ret, func(a, b PitStrategyRow) int {
		return cmp.Or(
			cmp.Compare(a.Circuit, b.Circuit),
			cmp.Compare(a.CircuitID, b.CircuitID),
			cmp.Compare(a.Stops, b.Stops))
	})
	return ret, nil
}

type PitEfficiencyRow struct {
	Driver    string
	DriverID  int
	Stops     int
	AvgPitMs  float64
	AvgPitSec float64
}

func (r PitEfficiencyRow) Map() map[string]any {
	return map[string]any{
		"driver":    r.Driver,
		"driverId":  r.DriverID,
		"stops":     r.Stops,
		"avgPitMs":  r.AvgPitMs,
		"avgPitSec": r.AvgPitSec,
	}
}

// PitEfficiency computes the average pit stop duration per driver. Stops
// of 40 seconds or more are treated as outliers (repairs, red flags) and
// ignored. Drivers need 5 remaining stops.
func PitEfficiency(ctx context.Context, ds *dataset.Dataset, p Params) ([]PitEfficiencyRow, error) {
	stops := lo.Filter(ds.PitStops(p.filter()), func(r pitRow, _ int) bool {
		return r.Milliseconds < PitStopOutlierMs
	})
	groups := stats.MinSample(
		stats.GroupByOrdered(stops, func(r pitRow) int { return r.DriverID }),
		p.minSample(5))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, pitRow]) (PitEfficiencyRow, bool) {
		avg := stats.AvgBy(g.Rows, func(r pitRow) float64 { return float64(r.Milliseconds) })
		return PitEfficiencyRow{
			Driver:    g.Rows[0].Driver.Name(),
			DriverID:  g.Key,
			Stops:     g.Count(),
			AvgPitMs:  stats.Round(avg, 1),
			AvgPitSec: stats.Round(avg/1000, 3),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b PitEfficiencyRow) int {
		return cmp.Or(
			cmp.Compare(a.AvgPitMs, b.AvgPitMs),
			desc(a.Stops, b.Stops),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return stats.Limit(ret, p.limit(20)), nil
}
