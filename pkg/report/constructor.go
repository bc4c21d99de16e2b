package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/aarondl/opt/null"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/presentation"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type ConstructorTrendRow struct {
	Constructor          string
	ConstructorID        int
	Year                 int
	Races                int
	Points               float64
	Wins                 int
	Podiums              int
	ChampionshipPosition null.Val[int]
}

func (r ConstructorTrendRow) Map() map[string]any {
	return map[string]any{
		"constructor":           r.Constructor,
		"constructorId":         r.ConstructorID,
		"year":                  r.Year,
		"races":                 r.Races,
		"points":                r.Points,
		"wins":                  r.Wins,
		"podiums":               r.Podiums,
		"championship_position": presentation.Nullable(r.ChampionshipPosition),
	}
}

type constructorSeason struct {
	constructorID int
	year          int
}

func compareConstructorSeason(a, b constructorSeason) int {
	return cmp.Or(cmp.Compare(a.year, b.year), cmp.Compare(a.constructorID, b.constructorID))
}

// ConstructorTrends summarizes every season of a constructor. The
// championship position is taken from the last standing of the season and
// is null if no standing exists.
func ConstructorTrends(ctx context.Context, ds *dataset.Dataset, p Params) ([]ConstructorTrendRow, error) {
	f := p.filter()
	groups := stats.GroupBy(results(ds, f),
		func(r resultRow) constructorSeason { return constructorSeason{r.ConstructorID, r.Race.Year} },
		compareConstructorSeason)

	// standings are in chronological order, the last one per season wins
	final := make(map[constructorSeason]int)
	for _, s := range ds.ConstructorStandings(dataset.Filter{Season: f.Season, ConstructorID: f.ConstructorID}) {
		final[constructorSeason{s.ConstructorID, s.Race.Year}] = s.Position
	}

	ret, err := stats.Collect(ctx, groups, func(g stats.Group[constructorSeason, resultRow]) (ConstructorTrendRow, bool) {
		row := ConstructorTrendRow{
			Constructor:   g.Rows[0].Constructor.Name,
			ConstructorID: g.Key.constructorID,
			Year:          g.Key.year,
			Races:         distinctRaces(g.Rows),
			Points:        stats.Round(stats.SumBy(g.Rows, points), 2),
			Wins:          stats.CountBy(g.Rows, isWin),
			Podiums:       stats.CountBy(g.Rows, isPodium),
		}
		if pos, ok := final[g.Key]; ok {
			row.ChampionshipPosition = null.From(pos)
		}
		return row, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b ConstructorTrendRow) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			desc(a.Points, b.Points),
			cmp.Compare(a.Constructor, b.Constructor),
			cmp.Compare(a.ConstructorID, b.ConstructorID))
	})
	return ret, nil
}

type ConstructorMomentumRow struct {
	Constructor       string
	ConstructorID     int
	Races             int
	RecentRaces       int
	PreviousRaces     int
	RecentAvgPoints   float64
	PreviousAvgPoints float64
	Momentum          float64
}

func (r ConstructorMomentumRow) Map() map[string]any {
	return map[string]any{
		"constructor":         r.Constructor,
		"constructorId":       r.ConstructorID,
		"races":               r.Races,
		"recent_races":        r.RecentRaces,
		"previous_races":      r.PreviousRaces,
		"recent_avg_points":   r.RecentAvgPoints,
		"previous_avg_points": r.PreviousAvgPoints,
		"momentum":            r.Momentum,
	}
}

type constructorRace struct {
	constructorID int
	raceID        int
}

// racePoints are the points of one constructor in one race, all entries
// summed up.
type racePoints struct {
	constructorID int
	name          string
	race          resultRow
	points        float64
}

// ConstructorMomentum compares the average points per race of the last
// Window races (default 5) of a season with the Window races before.
// Constructors need a full recent window and at least one previous race.
func ConstructorMomentum(ctx context.Context, ds *dataset.Dataset, p Params) ([]ConstructorMomentumRow, error) {
	w := p.window(5)
	perRace := stats.GroupBy(results(ds, p.seasonFilter(ds)),
		func(r resultRow) constructorRace { return constructorRace{r.ConstructorID, r.RaceID} },
		func(a, b constructorRace) int {
			return cmp.Or(cmp.Compare(a.constructorID, b.constructorID), cmp.Compare(a.raceID, b.raceID))
		})
	races, err := stats.Collect(ctx, perRace, func(g stats.Group[constructorRace, resultRow]) (racePoints, bool) {
		return racePoints{
			constructorID: g.Key.constructorID,
			name:          g.Rows[0].Constructor.Name,
			race:          g.Rows[0],
			points:        stats.SumBy(g.Rows, points),
		}, true
	})
	if err != nil {
		return nil, err
	}
	totals := lo.CountValuesBy(races, func(r racePoints) int { return r.constructorID })
	windows := stats.RollingWindow(races,
		func(r racePoints) int { return r.constructorID },
		cmp.Compare[int],
		func(a, b racePoints) int { return newestFirst(a.race, b.race) },
		2*w)
	ret, err := stats.Collect(ctx, windows, func(g stats.Group[int, racePoints]) (ConstructorMomentumRow, bool) {
		if g.Count() <= w {
			return ConstructorMomentumRow{}, false
		}
		recent, previous := g.Rows[:w], g.Rows[w:]
		byPoints := func(r racePoints) float64 { return r.points }
		recentAvg := stats.AvgBy(recent, byPoints)
		previousAvg := stats.AvgBy(previous, byPoints)
		return ConstructorMomentumRow{
			Constructor:       g.Rows[0].name,
			ConstructorID:     g.Key,
			Races:             totals[g.Key],
			RecentRaces:       len(recent),
			PreviousRaces:     len(previous),
			RecentAvgPoints:   stats.Round(recentAvg, 2),
			PreviousAvgPoints: stats.Round(previousAvg, 2),
			Momentum:          stats.Round(recentAvg-previousAvg, 2),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b ConstructorMomentumRow) int {
		return cmp.Or(
			desc(a.Momentum, b.Momentum),
			desc(a.RecentAvgPoints, b.RecentAvgPoints),
			cmp.Compare(a.Constructor, b.Constructor),
			cmp.Compare(a.ConstructorID, b.ConstructorID))
	})
	return ret, nil
}
