package report

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/stats"
)

type CircuitReliabilityRow struct {
	Circuit   string
	CircuitID int
	Country   string
	Races     int
	Entries   int
	DNFs      int
	DNFRate   float64
}

func (r CircuitReliabilityRow) Map() map[string]any {
	return map[string]any{
		"circuit":   r.Circuit,
		"circuitId": r.CircuitID,
		"country":   r.Country,
		"races":     r.Races,
		"entries":   r.Entries,
		"dnfs":      r.DNFs,
		"dnf_rate":  r.DNFRate,
	}
}

// CircuitReliability computes the share of retirements per circuit.
// Circuits need 3 distinct races.
func CircuitReliability(ctx context.Context, ds *dataset.Dataset, p Params) ([]CircuitReliabilityRow, error) {
	groups := stats.GroupByOrdered(results(ds, p.filter()), func(r resultRow) int {
		return r.Race.CircuitID
	})
	minRaces := p.minSample(3)
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (CircuitReliabilityRow, bool) {
		circuit, ok := ds.Circuit(g.Key)
		races := distinctRaces(g.Rows)
		if !ok || races < minRaces {
			return CircuitReliabilityRow{}, false
		}
		dnfs := stats.CountBy(g.Rows, isDNF)
		return CircuitReliabilityRow{
			Circuit:   circuit.Name,
			CircuitID: circuit.ID,
			Country:   circuit.Country,
			Races:     races,
			Entries:   g.Count(),
			DNFs:      dnfs,
			DNFRate:   stats.Pct(dnfs, g.Count(), 1),
		}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b CircuitReliabilityRow) int {
		return cmp.Or(
			desc(a.DNFRate, b.DNFRate),
			desc(a.Races, b.Races),
			cmp.Compare(a.Circuit, b.Circuit),
			cmp.Compare(a.CircuitID, b.CircuitID))
	})
	return ret, nil
}

type DNFCauseRow struct {
	Status   string
	StatusID int
	Count    int
}

func (r DNFCauseRow) Map() map[string]any {
	return map[string]any{
		"status":   r.Status,
		"statusId": r.StatusID,
		"count":    r.Count,
	}
}

// DNFCauses counts retirements per status label.
func DNFCauses(ctx context.Context, ds *dataset.Dataset, p Params) ([]DNFCauseRow, error) {
	dnfs := lo.Filter(results(ds, p.filter()), func(r resultRow, _ int) bool {
		return isDNF(r)
	})
	groups := stats.GroupByOrdered(dnfs, func(r resultRow) int { return r.StatusID })
	ret, err := stats.Collect(ctx, groups, func(g stats.Group[int, resultRow]) (DNFCauseRow, bool) {
		return DNFCauseRow{Status: g.Rows[0].Status.Status, StatusID: g.Key, Count: g.Count()}, true
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(ret, func(a, b DNFCauseRow) int {
		return cmp.Or(
			desc(a.Count, b.Count),
			cmp.Compare(a.Status, b.Status),
			cmp.Compare(a.StatusID, b.StatusID))
	})
	return stats.Limit(ret, p.limit(15)), nil
}
