package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type DriverFormRow struct {
	Driver        string
	DriverID      int
	RacesAnalyzed int
	Wins          int
	Podiums       int
	WinRate       float64
	PodiumRate    float64
	AvgFinish     float64
	Points        float64
}

func (r DriverFormRow) Map() map[string]any {
	return map[string]any{
		"driver":         r.Driver,
		"driverId":       r.DriverID,
		"races_analyzed": r.RacesAnalyzed,
		"wins":           r.Wins,
		"podiums":        r.Podiums,
		"win_rate":       r.WinRate,
		"podium_rate":    r.PodiumRate,
		"avg_finish":     r.AvgFinish,
		"points":         r.Points,
	}
}

type driverRace struct {
	driverID int
	raceID   int
}

// DriverForm evaluates the last Window (default 10) races with a classified
// result of every driver who raced in the season. If a driver has more than
// one result in a race (shared cars) the first one is used. History after
// the season is ignored. Drivers need at least half a window of races.
func DriverForm(ctx context.Context, ds *dataset.Dataset, p Params) ([]DriverFormRow, error) {
	n := p.window(10)
	season := p.season(ds)
	active := lo.SliceToMap(results(ds, p.seasonFilter(ds)), func(r resultRow) (int, bool) {
		return r.DriverID, true
	})
	f := p.filter()
	f.Season = omit.Val[int]{}
	history := lo.Filter(classified(results(ds, f)), func(r resultRow, _ int) bool {
		return r.Race.Year <= season && active[r.DriverID]
	})
	// one result per driver and race, the window counts races
	history = lo.UniqBy(history, func(r resultRow) driverRace {
		return driverRace{r.DriverID, r.RaceID}
	})
	windows := stats.MinSample(
		stats.RollingWindow(history, byDriver, cmp.Compare[int], newestFirst, n),
		p.minSample((n+1)/2))
	ret, err := stats.Collect(ctx, windows, func(g stats.Group[int, resultRow]) (DriverFormRow, bool) {
		wins := stats.CountBy(g.Rows, isWin)
		podiums := stats.CountBy(g.Rows, isPodium)
		return DriverFormRow{
			Driver:        g.Rows[0].Driver.Name(),
			DriverID:      g.Key,
			RacesAnalyzed: g.Count(),
			Wins:          wins,
			Podiums:       podiums,
			WinRate:       stats.Pct(wins, g.Count(), 1),
			PodiumRate:    stats.Pct(podiums, g.Count(), 1),
			AvgFinish:     stats.Round(stats.AvgBy(g.Rows, position), 2),
			Points:        stats.Round(stats.SumBy(g.Rows, points), 2),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b DriverFormRow) int {
		return cmp.Or(
			desc(a.WinRate, b.WinRate),
			cmp.Compare(a.AvgFinish, b.AvgFinish),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return stats.Limit(ret, p.limit(20)), nil
}
