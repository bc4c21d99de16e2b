package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/presentation"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type qualiRow = dataset.QualifyingRow

type QualifyingProgressionRow struct {
	Driver   string
	DriverID int
	Team     string
	Sessions int
	MadeQ2   int
	MadeQ3   int
	Q3Rate   float64
	Poles    int
}

func (r QualifyingProgressionRow) Map() map[string]any {
	return map[string]any{
		"driver":   r.Driver,
		"driverId": r.DriverID,
		"team":     r.Team,
		"sessions": r.Sessions,
		"made_q2":  r.MadeQ2,
		"made_q3":  r.MadeQ3,
		"q3_rate":  r.Q3Rate,
		"poles":    r.Poles,
	}
}

// QualifyingProgression counts per driver of a season how often Q2 and Q3
// were reached. The team is the constructor of the latest session.
//nolint:whitespace // can't make both editor and linter happy
func QualifyingProgression(
	ctx context.Context,
	ds *dataset.Dataset,
	p Params,
) ([]QualifyingProgressionRow, error) {
	rows := ds.Qualifying(p.seasonFilter(ds))
	groups := stats.MinSample(
		stats.GroupByOrdered(rows, func(q qualiRow) int { return q.DriverID }),
		p.minSample(3))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, qualiRow]) (QualifyingProgressionRow, bool) {
		madeQ3 := stats.CountBy(g.Rows, func(q qualiRow) bool { return hasTime(q.Q3) })
		return QualifyingProgressionRow{
			Driver:   g.Rows[0].Driver.Name(),
			DriverID: g.Key,
			Team:     latestQuali(g.Rows).Constructor.Name,
			Sessions: g.Count(),
			MadeQ2:   stats.CountBy(g.Rows, func(q qualiRow) bool { return hasTime(q.Q2) }),
			MadeQ3:   madeQ3,
			Q3Rate:   stats.Pct(madeQ3, g.Count(), 1),
			Poles:    stats.CountBy(g.Rows, func(q qualiRow) bool { return q.Position == 1 }),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b QualifyingProgressionRow) int {
		return cmp.Or(
			desc(a.Poles, b.Poles),
			desc(a.Q3Rate, b.Q3Rate),
			desc(a.Sessions, b.Sessions),
			cmp.Compare(a.Driver, b.Driver),
			cmp.Compare(a.DriverID, b.DriverID))
	})
	return ret, nil
}

func latestQuali(rows []qualiRow) qualiRow {
	return lo.MaxBy(rows, func(a, b qualiRow) bool {
		return cmp.Or(a.Race.Compare(b.Race), cmp.Compare(a.ID, b.ID)) > 0
	})
}

type TeammateBattleRow struct {
	Team          string
	ConstructorID int
	Driver1       string
	Driver1ID     int
	Driver2       string
	Driver2ID     int
	HeadToHeads   int
	Driver1Wins   int
	Driver2Wins   int
}

func (r TeammateBattleRow) Map() map[string]any {
	return map[string]any{
		"team":          r.Team,
		"constructorId": r.ConstructorID,
		"driver1":       r.Driver1,
		"driver1Id":     r.Driver1ID,
		"driver2":       r.Driver2,
		"driver2Id":     r.Driver2ID,
		"head_to_heads": r.HeadToHeads,
		"driver1_wins":  r.Driver1Wins,
		"driver2_wins":  r.Driver2Wins,
	}
}

type teamSession struct {
	raceID        int
	constructorID int
}

type pairing struct {
	constructorID int
	driver1ID     int
	driver2ID     int
}

func comparePairing(a, b pairing) int {
	return cmp.Or(
		cmp.Compare(a.constructorID, b.constructorID),
		cmp.Compare(a.driver1ID, b.driver1ID),
		cmp.Compare(a.driver2ID, b.driver2ID))
}

// duel is one qualifying session of a pairing. first is the entry of the
// driver with the lower id.
type duel struct {
	pairing
	first, second qualiRow
}

// TeammateBattles compares the qualifying positions of drivers sharing a
// constructor in the same race. Each pairing is counted once with the lower
// driver id first. Equal positions count for neither driver. Pairings need
// 5 shared sessions. If a driver is given, only that driver's pairings are
// returned.
func TeammateBattles(ctx context.Context, ds *dataset.Dataset, p Params) ([]TeammateBattleRow, error) {
	f := p.seasonFilter(ds)
	f.DriverID = omit.Val[int]{}
	rows := ds.Qualifying(f)
	sessions := stats.GroupBy(rows,
		func(q qualiRow) teamSession { return teamSession{q.RaceID, q.ConstructorID} },
		func(a, b teamSession) int {
			return cmp.Or(cmp.Compare(a.raceID, b.raceID), cmp.Compare(a.constructorID, b.constructorID))
		})
	duels := make([]duel, 0)
	for _, s := range sessions {
		for i := range s.Rows {
			for j := range s.Rows {
				a, b := s.Rows[i], s.Rows[j]
				if a.DriverID >= b.DriverID {
					continue
				}
				duels = append(duels, duel{
					pairing: pairing{s.Key.constructorID, a.DriverID, b.DriverID},
					first:   a,
					second:  b,
				})
			}
		}
	}
	if d, ok := p.DriverID.Get(); ok {
		duels = lo.Filter(duels, func(x duel, _ int) bool {
			return x.driver1ID == d || x.driver2ID == d
		})
	}
	groups := stats.MinSample(
		stats.GroupBy(duels, func(x duel) pairing { return x.pairing }, comparePairing),
		p.minSample(5))
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[pairing, duel]) (TeammateBattleRow, bool) {
		first := g.Rows[0]
		d1Wins := stats.CountBy(g.Rows, func(x duel) bool {
			return x.first.Position < x.second.Position
		})
		d2Wins := stats.CountBy(g.Rows, func(x duel) bool {
			return x.second.Position < x.first.Position
		})
		return TeammateBattleRow{
			Team:          first.first.Constructor.Name,
			ConstructorID: g.Key.constructorID,
			Driver1:       first.first.Driver.Name(),
			Driver1ID:     g.Key.driver1ID,
			Driver2:       first.second.Driver.Name(),
			Driver2ID:     g.Key.driver2ID,
			HeadToHeads:   g.Count(),
			Driver1Wins:   d1Wins,
			Driver2Wins:   d2Wins,
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b TeammateBattleRow) int {
		return cmp.Or(
			cmp.Compare(a.Team, b.Team),
			cmp.Compare(a.ConstructorID, b.ConstructorID),
			cmp.Compare(a.Driver1ID, b.Driver1ID),
			cmp.Compare(a.Driver2ID, b.Driver2ID))
	})
	return ret, nil
}

type QualiVsRaceRow struct {
	Race     string
	RaceID   int
	Year     int
	Round    int
	QualiPos null.Val[int]
	RacePos  null.Val[int]
	Delta    null.Val[int]
}

func (r QualiVsRaceRow) Map() map[string]any {
	return map[string]any{
		"race":     r.Race,
		"raceId":   r.RaceID,
		"year":     r.Year,
		"round":    r.Round,
		"qualiPos": presentation.Nullable(r.QualiPos),
		"racePos":  presentation.Nullable(r.RacePos),
		"delta":    presentation.Nullable(r.Delta),
	}
}

// QualiVsRace lists the qualifying and race position of a driver per race,
// most recent first. A positive delta means places gained in the race.
func QualiVsRace(ctx context.Context, ds *dataset.Dataset, p Params) ([]QualiVsRaceRow, error) {
	if err := p.require(ParamDriver); err != nil {
		return nil, err
	}
	f := p.filter()
	quali := lo.KeyBy(ds.Qualifying(f), func(q qualiRow) int { return q.RaceID })
	groups := stats.GroupByOrdered(results(ds, f), func(r resultRow) int { return r.RaceID })
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (QualiVsRaceRow, bool) {
		r := g.Rows[0]
		row := QualiVsRaceRow{
			Race:    r.Race.Name,
			RaceID:  r.RaceID,
			Year:    r.Race.Year,
			Round:   r.Race.Round,
			RacePos: r.Position,
		}
		if q, ok := quali[r.RaceID]; ok {
			row.QualiPos = null.From(q.Position)
			if pos, ok := r.Position.Get(); ok {
				row.Delta = null.From(q.Position - pos)
			}
		}
		return row, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b QualiVsRaceRow) int {
		return cmp.Or(desc(a.Year, b.Year), desc(a.Round, b.Round), desc(a.RaceID, b.RaceID))
	})
	return stats.Limit(ret, p.limit(50)), nil
}
