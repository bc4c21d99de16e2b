package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type FastestLapsRow struct {
	Driver         string
	DriverID       int
	Races          int
	FastestLaps    int
	FastestLapRate float64
}

func (r FastestLapsRow) Map() map[string]any {
	return map[string]any{
		"driver":           r.Driver,
		"driverId":         r.DriverID,
		"races":            r.Races,
		"fastest_laps":     r.FastestLaps,
		"fastest_lap_rate": r.FastestLapRate,
	}
}

// FastestLaps counts the results with fastest lap rank 1 per driver of a
// season relative to the races entered.
func FastestLaps(ctx context.Context, ds *dataset.Dataset, p Params) ([]FastestLapsRow, error) {
	groups := stats.GroupByOrdered(results(ds, p.seasonFilter(ds)), byDriver)
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (FastestLapsRow, bool) {
		fl := stats.CountBy(g.Rows, func(r resultRow) bool {
			rank, ok := r.Rank.Get()
			return ok && rank == 1
		})
		return FastestLapsRow{
			Driver:         g.Rows[0].Driver.Name(),
			DriverID:       g.Key,
			Races:          g.Count(),
			FastestLaps:    fl,
			FastestLapRate: stats.Pct(fl, g.Count(), 1),
		}, fl >= max(p.MinSample, 1)
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b FastestLapsRow) int {
		return cmp.Or(
			desc(a.FastestLaps, b.FastestLaps),
			desc(a.FastestLapRate, b.FastestLapRate),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return stats.Limit(ret, p.limit(10)), nil
}

type LapsLedRow struct {
	Driver   string
	DriverID int
	LapsLed  int
	RacesLed int
}

func (r LapsLedRow) Map() map[string]any {
	return map[string]any{
		"driver":    r.Driver,
		"driverId":  r.DriverID,
		"laps_led":  r.LapsLed,
		"races_led": r.RacesLed,
	}
}

// LapsLed counts the laps completed in first position per driver of a
// season and the number of races in which the driver led at least one lap.
func LapsLed(ctx context.Context, ds *dataset.Dataset, p Params) ([]LapsLedRow, error) {
	leading := lo.Filter(ds.LapTimes(p.seasonFilter(ds)), func(l dataset.LapTimeRow, _ int) bool {
		return l.Position == 1
	})
	groups := stats.GroupByOrdered(leading, func(l dataset.LapTimeRow) int { return l.DriverID })
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, dataset.LapTimeRow]) (LapsLedRow, bool) {
		races := lo.UniqBy(g.Rows, func(l dataset.LapTimeRow) int { return l.RaceID })
		return LapsLedRow{
			Driver:   g.Rows[0].Driver.Name(),
			DriverID: g.Key,
			LapsLed:  g.Count(),
			RacesLed: len(races),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b LapsLedRow) int {
		return cmp.Or(
			desc(a.LapsLed, b.LapsLed),
			desc(a.RacesLed, b.RacesLed),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return stats.Limit(ret, p.limit(20)), nil
}
