package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type PoleToWinRow struct {
	Driver         string
	DriverID       int
	Poles          int
	WinsFromPole   int
	ConversionRate float64
}

func (r PoleToWinRow) Map() map[string]any {
	return map[string]any{
		"driver":         r.Driver,
		"driverId":       r.DriverID,
		"poles":          r.Poles,
		"winsFromPole":   r.WinsFromPole,
		"conversionRate": r.ConversionRate,
	}
}

// PoleToWin computes how often drivers converted a start from grid 1 into
// a win. Drivers need at least 5 poles.
func PoleToWin(ctx context.Context, ds *dataset.Dataset, p Params) ([]PoleToWinRow, error) {
	poles := lo.Filter(results(ds, p.filter()), func(r resultRow, _ int) bool {
		return r.Grid == 1
	})
	groups := stats.MinSample(stats.GroupByOrdered(poles, byDriver), p.minSample(5))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (PoleToWinRow, bool) {
		wins := stats.CountBy(g.Rows, isWin)
		return PoleToWinRow{
			Driver:         g.Rows[0].Driver.Name(),
			DriverID:       g.Key,
			Poles:          g.Count(),
			WinsFromPole:   wins,
			ConversionRate: stats.Pct(wins, g.Count(), 1),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b PoleToWinRow) int {
		return cmp.Or(
			desc(a.ConversionRate, b.ConversionRate),
			desc(a.Poles, b.Poles),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return stats.Limit(ret, p.limit(20)), nil
}

type GridPerformanceRow struct {
	Driver             string
	DriverID           int
	Races              int
	AvgGrid            float64
	AvgFinish          float64
	AvgPositionsGained float64
}

func (r GridPerformanceRow) Map() map[string]any {
	return map[string]any{
		"driver":               r.Driver,
		"driverId":             r.DriverID,
		"races":                r.Races,
		"avg_grid":             r.AvgGrid,
		"avg_finish":           r.AvgFinish,
		"avg_positions_gained": r.AvgPositionsGained,
	}
}

// GridPerformance computes the average positions gained between grid and
// finish per driver of a season. Pit lane starts and non classified results
// are ignored, drivers need 5 such races.
func GridPerformance(ctx context.Context, ds *dataset.Dataset, p Params) ([]GridPerformanceRow, error) {
	rows := lo.Filter(results(ds, p.seasonFilter(ds)), func(r resultRow, _ int) bool {
		return r.Classified() && r.Grid > 0
	})
	groups := stats.MinSample(stats.GroupByOrdered(rows, byDriver), p.minSample(5))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (GridPerformanceRow, bool) {
		gained := stats.AvgBy(g.Rows, func(r resultRow) float64 {
			return grid(r) - position(r)
		})
		return GridPerformanceRow{
			Driver:             g.Rows[0].Driver.Name(),
			DriverID:           g.Key,
			Races:              g.Count(),
			AvgGrid:            stats.Round(stats.AvgBy(g.Rows, grid), 2),
			AvgFinish:          stats.Round(stats.AvgBy(g.Rows, position), 2),
			AvgPositionsGained: stats.Round(gained, 2),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b GridPerformanceRow) int {
		return cmp.Or(
			desc(a.AvgPositionsGained, b.AvgPositionsGained),
			desc(a.Races, b.Races),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return ret, nil
}

func grid(r resultRow) float64 {
	return float64(r.Grid)
}

type GridConversionRow struct {
	Grid       int
	Starts     int
	Wins       int
	Podiums    int
	WinRate    float64
	PodiumRate float64
}

func (r GridConversionRow) Map() map[string]any {
	return map[string]any{
		"grid":       r.Grid,
		"starts":     r.Starts,
		"wins":       r.Wins,
		"podiums":    r.Podiums,
		"winRate":    r.WinRate,
		"podiumRate": r.PodiumRate,
	}
}

// GridConversion computes win and podium rates per starting slot 1..20 over
// all classified results.
func GridConversion(ctx context.Context, ds *dataset.Dataset, p Params) ([]GridConversionRow, error) {
	rows := lo.Filter(results(ds, p.filter()), func(r resultRow, _ int) bool {
		return r.Grid >= 1 && r.Grid <= 20 && r.Classified()
	})
	groups := stats.GroupByOrdered(rows, func(r resultRow) int { return r.Grid })
	return stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (GridConversionRow, bool) {
		wins := stats.CountBy(g.Rows, isWin)
		podiums := stats.CountBy(g.Rows, isPodium)
		return GridConversionRow{
			Grid:       g.Key,
			Starts:     g.Count(),
			Wins:       wins,
			Podiums:    podiums,
			WinRate:    stats.Pct(wins, g.Count(), 1),
			PodiumRate: stats.Pct(podiums, g.Count(), 1),
		}, true
	})
}
