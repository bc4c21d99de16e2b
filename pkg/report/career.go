package report

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/aarondl/opt/null"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/presentation"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type DriverCareerRow struct {
	Driver           string
	DriverID         int
	Seasons          int
	Races            int
	Wins             int
	Podiums          int
	Poles            int
	FastestLaps      int
	Points           float64
	DNFs             int
	WinRate          float64
	PodiumRate       float64
	PoleRate         float64
	DNFRate          float64
	Championships    int
	BestChampionship null.Val[int]
	Teams            string
}

func (r DriverCareerRow) Map() map[string]any {
	return map[string]any{
		"driver":            r.Driver,
		"driverId":          r.DriverID,
		"seasons":           r.Seasons,
		"races":             r.Races,
		"wins":              r.Wins,
		"podiums":           r.Podiums,
		"poles":             r.Poles,
		"fastest_laps":      r.FastestLaps,
		"points":            r.Points,
		"dnfs":              r.DNFs,
		"win_rate":          r.WinRate,
		"podium_rate":       r.PodiumRate,
		"pole_rate":         r.PoleRate,
		"dnf_rate":          r.DNFRate,
		"championships":     r.Championships,
		"best_championship": presentation.Nullable(r.BestChampionship),
		"teams":             r.Teams,
	}
}

type DriverSeasonRow struct {
	Driver               string
	DriverID             int
	Year                 int
	SeasonRaces          int
	Races                int
	Wins                 int
	Podiums              int
	Poles                int
	FastestLaps          int
	Points               float64
	DNFs                 int
	ChampionshipPosition null.Val[int]
	Teams                string
}

func (r DriverSeasonRow) Map() map[string]any {
	return map[string]any{
		"driver":                r.Driver,
		"driverId":              r.DriverID,
		"year":                  r.Year,
		"season_races":          r.SeasonRaces,
		"races":                 r.Races,
		"wins":                  r.Wins,
		"podiums":               r.Podiums,
		"poles":                 r.Poles,
		"fastest_laps":          r.FastestLaps,
		"points":                r.Points,
		"dnfs":                  r.DNFs,
		"championship_position": presentation.Nullable(r.ChampionshipPosition),
		"teams":                 r.Teams,
	}
}

type driverSeason struct {
	driverID int
	year     int
}

func isPole(r resultRow) bool { return r.Grid == 1 }

func isFastestLap(r resultRow) bool {
	rank, ok := r.Rank.Get()
	return ok && rank == 1
}

// teams lists the constructor names in order of first appearance.
func teams(rows []resultRow) string {
	return strings.Join(lo.Uniq(lo.Map(rows, func(r resultRow, _ int) string {
		return r.Constructor.Name
	})), ", ")
}

// finalDriverPositions returns the championship position of the last
// standing per driver and season.
func finalDriverPositions(ds *dataset.Dataset, f dataset.Filter) map[driverSeason]int {
	ret := make(map[driverSeason]int)
	// standings are in chronological order, the last one per season wins
	for _, s := range ds.DriverStandings(dataset.Filter{Season: f.Season, DriverID: f.DriverID}) {
		ret[driverSeason{s.DriverID, s.Race.Year}] = s.Position
	}
	return ret
}

// DriverCareer sums up the results of every driver. Season, constructor
// and driver parameters restrict the results taken into account. Rates are
// relative to the number of races. Championship figures use the last
// standing of each season the driver has results in.
func DriverCareer(ctx context.Context, ds *dataset.Dataset, p Params) ([]DriverCareerRow, error) {
	f := p.filter()
	final := finalDriverPositions(ds, f)
	groups := stats.GroupByOrdered(results(ds, f), byDriver)
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (DriverCareerRow, bool) {
		races := distinctRaces(g.Rows)
		wins := stats.CountBy(g.Rows, isWin)
		podiums := stats.CountBy(g.Rows, isPodium)
		poles := stats.CountBy(g.Rows, isPole)
		dnfs := stats.CountBy(g.Rows, isDNF)
		years := lo.Uniq(lo.Map(g.Rows, func(r resultRow, _ int) int { return r.Race.Year }))
		row := DriverCareerRow{
			Driver:      g.Rows[0].Driver.Name(),
			DriverID:    g.Key,
			Seasons:     len(years),
			Races:       races,
			Wins:        wins,
			Podiums:     podiums,
			Poles:       poles,
			FastestLaps: stats.CountBy(g.Rows, isFastestLap),
			Points:      stats.Round(stats.SumBy(g.Rows, points), 2),
			DNFs:        dnfs,
			WinRate:     stats.Pct(wins, races, 1),
			PodiumRate:  stats.Pct(podiums, races, 1),
			PoleRate:    stats.Pct(poles, races, 1),
			DNFRate:     stats.Pct(dnfs, races, 1),
			Teams:       teams(g.Rows),
		}
		for _, year := range years {
			pos, ok := final[driverSeason{g.Key, year}]
			if !ok {
				continue
			}
			if pos == 1 {
				row.Championships++
			}
			if best, ok := row.BestChampionship.Get(); !ok || pos < best {
				row.BestChampionship = null.From(pos)
			}
		}
		return row, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b DriverCareerRow) int {
		return cmp.Or(
			desc(a.Wins, b.Wins),
			desc(a.Points, b.Points),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return stats.Limit(ret, p.limit(20)), nil
}

// DriverSeasons breaks the career of every driver down into seasons. The
// championship position is taken from the last standing of the season and
// is null if no standing exists.
func DriverSeasons(ctx context.Context, ds *dataset.Dataset, p Params) ([]DriverSeasonRow, error) {
	f := p.filter()
	final := finalDriverPositions(ds, f)
	held := make(map[int]int)
	for _, r := range ds.Races(dataset.Filter{Season: f.Season}) {
		held[r.Year]++
	}
	groups := stats.GroupBy(results(ds, f),
		func(r resultRow) driverSeason { return driverSeason{r.DriverID, r.Race.Year} },
		func(a, b driverSeason) int {
			return cmp.Or(cmp.Compare(a.year, b.year), cmp.Compare(a.driverID, b.driverID))
		})
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[driverSeason, resultRow]) (DriverSeasonRow, bool) {
		row := DriverSeasonRow{
			Driver:      g.Rows[0].Driver.Name(),
			DriverID:    g.Key.driverID,
			Year:        g.Key.year,
			SeasonRaces: held[g.Key.year],
			Races:       distinctRaces(g.Rows),
			Wins:        stats.CountBy(g.Rows, isWin),
			Podiums:     stats.CountBy(g.Rows, isPodium),
			Poles:       stats.CountBy(g.Rows, isPole),
			FastestLaps: stats.CountBy(g.Rows, isFastestLap),
			Points:      stats.Round(stats.SumBy(g.Rows, points), 2),
			DNFs:        stats.CountBy(g.Rows, isDNF),
			Teams:       teams(g.Rows),
		}
		if pos, ok := final[g.Key]; ok {
			row.ChampionshipPosition = null.From(pos)
		}
		return row, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b DriverSeasonRow) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmpPosition(a.ChampionshipPosition, b.ChampionshipPosition),
			desc(a.Points, b.Points),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return ret, nil
}

// cmpPosition orders known positions ascending, null positions last.
func cmpPosition(a, b null.Val[int]) int {
	pa, okA := a.Get()
	pb, okB := b.Get()
	switch {
	case okA && okB:
		return cmp.Compare(pa, pb)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}
