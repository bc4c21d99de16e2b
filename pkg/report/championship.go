package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type ChampionshipProgressionRow struct {
	Driver   string
	DriverID int
	Round    int
	Race     string
	Points   float64
	Position int
	Wins     int
}

func (r ChampionshipProgressionRow) Map() map[string]any {
	return map[string]any{
		"driver":   r.Driver,
		"driverId": r.DriverID,
		"round":    r.Round,
		"race":     r.Race,
		"points":   r.Points,
		"position": r.Position,
		"wins":     r.Wins,
	}
}

// ChampionshipProgression lists the standing after every round of a season
// for the drivers finishing the championship within the top Limit
// (default 10).
//nolint:whitespace // can't make both editor and linter happy
func ChampionshipProgression(
	ctx context.Context,
	ds *dataset.Dataset,
	p Params,
) ([]ChampionshipProgressionRow, error) {
	top := p.limit(10)
	standings := ds.DriverStandings(p.seasonFilter(ds))
	groups := stats.GroupByOrdered(standings, func(s dataset.DriverStandingRow) int { return s.DriverID })
	perDriver, err := stats.Collect(ctx, groups,
		func(g stats.Group[int, dataset.DriverStandingRow]) ([]ChampionshipProgressionRow, bool) {
			// rows are in chronological order
			if g.Rows[len(g.Rows)-1].Position > top {
				return nil, false
			}
			return lo.Map(g.Rows, func(s dataset.DriverStandingRow, _ int) ChampionshipProgressionRow {
				return ChampionshipProgressionRow{
					Driver:   s.Driver.Name(),
					DriverID: s.DriverID,
					Round:    s.Race.Round,
					Race:     s.Race.Name,
					Points:   s.Points,
					Position: s.Position,
					Wins:     s.Wins,
				}
			}), true
		})
	if err != nil {
		return nil, err
	}
	ret := lo.Flatten(perDriver)
	slices.SortFunc(ret, func(a, b ChampionshipProgressionRow) int {
		return cmp.Or(
			cmp.Compare(a.Round, b.Round),
			cmp.Compare(a.Position, b.Position),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return ret, nil
}

type PointsEfficiencyRow struct {
	Driver        string
	DriverID      int
	Team          string
	Races         int
	TotalPoints   float64
	PointsPerRace float64
	PointsRate    float64
}

func (r PointsEfficiencyRow) Map() map[string]any {
	return map[string]any{
		"driver":          r.Driver,
		"driverId":        r.DriverID,
		"team":            r.Team,
		"races":           r.Races,
		"total_points":    r.TotalPoints,
		"points_per_race": r.PointsPerRace,
		"points_rate":     r.PointsRate,
	}
}

// PointsEfficiency computes the points per race of a season and the share
// of the maximum obtainable points (win plus fastest lap). The team is the
// constructor of the driver's latest race. Drivers need 3 races.
func PointsEfficiency(ctx context.Context, ds *dataset.Dataset, p Params) ([]PointsEfficiencyRow, error) {
	groups := stats.MinSample(
		stats.GroupByOrdered(results(ds, p.seasonFilter(ds)), byDriver),
		p.minSample(3))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (PointsEfficiencyRow, bool) {
		total := stats.SumBy(g.Rows, points)
		races := float64(g.Count())
		return PointsEfficiencyRow{
			Driver:        g.Rows[0].Driver.Name(),
			DriverID:      g.Key,
			Team:          g.Rows[len(g.Rows)-1].Constructor.Name,
			Races:         g.Count(),
			TotalPoints:   stats.Round(total, 2),
			PointsPerRace: stats.Ratio(total, races, 2),
			PointsRate:    stats.Ratio(100*total, MaxPointsPerRace*races, 1),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b PointsEfficiencyRow) int {
		return cmp.Or(
			desc(a.TotalPoints, b.TotalPoints),
			desc(a.PointsPerRace, b.PointsPerRace),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return ret, nil
}
