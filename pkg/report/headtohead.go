package report

import (
	"context"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type HeadToHeadRow struct {
	Driver1       string
	Driver1ID     int
	Driver2       string
	Driver2ID     int
	SharedRaces   int
	ComparedRaces int
	Driver1Ahead  int
	Driver2Ahead  int
	Driver1Points float64
	Driver2Points float64
	Driver1Wins   int
	Driver2Wins   int
}

func (r HeadToHeadRow) Map() map[string]any {
	return map[string]any{
		"driver1":       r.Driver1,
		"driver1Id":     r.Driver1ID,
		"driver2":       r.Driver2,
		"driver2Id":     r.Driver2ID,
		"sharedRaces":   r.SharedRaces,
		"comparedRaces": r.ComparedRaces,
		"driver1Ahead":  r.Driver1Ahead,
		"driver2Ahead":  r.Driver2Ahead,
		"driver1Points": r.Driver1Points,
		"driver2Points": r.Driver2Points,
		"driver1Wins":   r.Driver1Wins,
		"driver2Wins":   r.Driver2Wins,
	}
}

// HeadToHead compares two drivers over all races both took part in.
// Every such race counts as shared race. Only races where both drivers were
// classified take part in the ahead comparison (comparedRaces); a non
// classified result is neither ahead nor behind. Points and wins are summed
// over the shared races.
//
// Unknown or identical driver ids yield an empty result.
func HeadToHead(ctx context.Context, ds *dataset.Dataset, p Params) ([]HeadToHeadRow, error) {
	if err := p.require(ParamDriver, ParamDriver2); err != nil {
		return nil, err
	}
	id1, _ := p.DriverID.Get()
	id2, _ := p.Driver2ID.Get()
	d1, ok1 := ds.Driver(id1)
	d2, ok2 := ds.Driver(id2)
	if id1 == id2 || !ok1 || !ok2 {
		return []HeadToHeadRow{}, nil
	}

	f := p.filter()
	f.DriverID = p.DriverID
	first := entries(ds, f)
	f.DriverID = p.Driver2ID
	second := entries(ds, f)

	shared := stats.GroupByOrdered(
		lo.Filter(lo.Values(first), func(r resultRow, _ int) bool {
			_, ok := second[r.RaceID]
			return ok
		}),
		func(r resultRow) int { return r.RaceID })
	row := HeadToHeadRow{
		Driver1: d1.Name(), Driver1ID: d1.ID,
		Driver2: d2.Name(), Driver2ID: d2.ID,
	}
	for _, g := range shared {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b := g.Rows[0], second[g.Key]
		row.SharedRaces++
		row.Driver1Points += a.Points
		row.Driver2Points += b.Points
		row.Driver1Wins += lo.Ternary(isWin(a), 1, 0)
		row.Driver2Wins += lo.Ternary(isWin(b), 1, 0)
		posA, okA := a.Position.Get()
		posB, okB := b.Position.Get()
		if !okA || !okB {
			continue
		}
		row.ComparedRaces++
		switch {
		case posA < posB:
			row.Driver1Ahead++
		case posB < posA:
			row.Driver2Ahead++
		}
	}
	row.Driver1Points = stats.Round(row.Driver1Points, 2)
	row.Driver2Points = stats.Round(row.Driver2Points, 2)
	return []HeadToHeadRow{row}, nil
}

// entries returns the result per race of the filtered driver. If a driver
// has more than one result in a race (shared cars) the first one is used.
func entries(ds *dataset.Dataset, f dataset.Filter) map[int]resultRow {
	ret := make(map[int]resultRow)
	for _, r := range results(ds, f) {
		if _, ok := ret[r.RaceID]; !ok {
			ret[r.RaceID] = r
		}
	}
	return ret
}
