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

type CircuitAdvantageRow struct {
	Circuit     string
	CircuitID   int
	Country     string
	Races       int
	AvgFinish   float64
	Wins        int
	Podiums     int
	TotalPoints float64
	Advantage   float64
}

func (r CircuitAdvantageRow) Map() map[string]any {
	return map[string]any{
		"circuit":      r.Circuit,
		"circuitId":    r.CircuitID,
		"country":      r.Country,
		"races":        r.Races,
		"avg_finish":   r.AvgFinish,
		"wins":         r.Wins,
		"podiums":      r.Podiums,
		"total_points": r.TotalPoints,
		"advantage":    r.Advantage,
	}
}

// CircuitAdvantage compares the average finish of a driver per circuit with
// the driver's overall average finish. A positive advantage means the driver
// finishes better at that circuit. Circuits need 2 classified results.
func CircuitAdvantage(ctx context.Context, ds *dataset.Dataset, p Params) ([]CircuitAdvantageRow, error) {
	if err := p.require(ParamDriver); err != nil {
		return nil, err
	}
	f := p.filter()
	f.CircuitID = omit.Val[int]{}
	rows := classified(results(ds, f))
	overall := stats.AvgBy(rows, position)

	if c, ok := p.CircuitID.Get(); ok {
		rows = lo.Filter(rows, func(r resultRow, _ int) bool { return r.Race.CircuitID == c })
	}
	groups := stats.MinSample(
		stats.GroupByOrdered(rows, func(r resultRow) int { return r.Race.CircuitID }),
		p.minSample(2))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (CircuitAdvantageRow, bool) {
		circuit, ok := ds.Circuit(g.Key)
		if !ok {
			return CircuitAdvantageRow{}, false
		}
		avg := stats.AvgBy(g.Rows, position)
		return CircuitAdvantageRow{
			Circuit:     circuit.Name,
			CircuitID:   circuit.ID,
			Country:     circuit.Country,
			Races:       g.Count(),
			AvgFinish:   stats.Round(avg, 2),
			Wins:        stats.CountBy(g.Rows, isWin),
			Podiums:     stats.CountBy(g.Rows, isPodium),
			TotalPoints: stats.Round(stats.SumBy(g.Rows, points), 2),
			Advantage:   stats.Round(overall-avg, 2),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b CircuitAdvantageRow) int {
		return cmp.Or(
			desc(a.Advantage, b.Advantage),
			desc(a.Races, b.Races),
			cmp.Compare(a.Circuit, b.Circuit),
			cmp.Compare(a.CircuitID, b.CircuitID))
	})
	return ret, nil
}

type CircuitKingRow struct {
	Circuit   string
	CircuitID int
	Rank      int
	Driver    string
	DriverID  int
	Wins      int
	Points    float64
}

func (r CircuitKingRow) Map() map[string]any {
	return map[string]any{
		"circuit":   r.Circuit,
		"circuitId": r.CircuitID,
		"rank":      r.Rank,
		"driver":    r.Driver,
		"driverId":  r.DriverID,
		"wins":      r.Wins,
		"points":    r.Points,
	}
}

type circuitDriver struct {
	circuitID int
	driverID  int
}

// king is the record of one driver at one circuit.
type king struct {
	circuitDriver
	driver string
	wins   int
	points float64
	best   int
}

// CircuitKings ranks the winners of every circuit by wins, points and best
// finish and keeps the top Limit (default 3) per circuit.
func CircuitKings(ctx context.Context, ds *dataset.Dataset, p Params) ([]CircuitKingRow, error) {
	groups := stats.GroupBy(classified(results(ds, p.filter())),
		func(r resultRow) circuitDriver { return circuitDriver{r.Race.CircuitID, r.DriverID} },
		func(a, b circuitDriver) int {
			return cmp.Or(cmp.Compare(a.circuitID, b.circuitID), cmp.Compare(a.driverID, b.driverID))
		})
	kings, err := stats.Collect(ctx, groups, func(g stats.Group[circuitDriver, resultRow]) (king, bool) {
		wins := stats.CountBy(g.Rows, isWin)
		return king{
			circuitDriver: g.Key,
			driver:        g.Rows[0].Driver.Name(),
			wins:          wins,
			points:        stats.Round(stats.SumBy(g.Rows, points), 2),
			best:          int(lo.Min(lo.Map(g.Rows, func(r resultRow, _ int) float64 { return position(r) }))),
		}, wins >= 1
	})
	if err != nil {
		return nil, err
	}
	ranked := stats.TopNByPartition(kings,
		func(k king) int { return k.circuitID },
		cmp.Compare[int],
		func(a, b king) int {
			return cmp.Or(
				desc(a.wins, b.wins),
				desc(a.points, b.points),
				cmp.Compare(a.best, b.best),
				cmp.Compare(a.driverID, b.driverID))
		},
		p.limit(3))
	ret := make([]CircuitKingRow, 0)
	for _, g := range ranked {
		circuit, ok := ds.Circuit(g.Key)
		if !ok {
			continue
		}
		for i, k := range g.Rows {
			ret = append(ret, CircuitKingRow{
				Circuit:   circuit.Name,
				CircuitID: circuit.ID,
				Rank:      i + 1,
				Driver:    k.driver,
				DriverID:  k.driverID,
				Wins:      k.wins,
				Points:    k.points,
			})
		}
	}
	slices.SortFunc(ret, func(a, b CircuitKingRow) int {
		return cmp.Or(
			cmp.Compare(a.Circuit, b.Circuit),
			cmp.Compare(a.CircuitID, b.CircuitID),
			cmp.Compare(a.Rank, b.Rank))
	})
	return ret, nil
}
