package report

import (
	"cmp"
	"strings"

	"github.com/aarondl/opt/null"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/pkg/dataset"
)

type resultRow = dataset.ResultRow

// results returns the joined results matching f. Results with an unknown
// status are dropped like any other dangling reference.
func results(ds *dataset.Dataset, f dataset.Filter) []resultRow {
	return lo.Filter(ds.Results(f), func(r resultRow, _ int) bool {
		return r.HasStatus
	})
}

func classified(rows []resultRow) []resultRow {
	return lo.Filter(rows, func(r resultRow, _ int) bool {
		return r.Classified()
	})
}

func byDriver(r resultRow) int { return r.DriverID }

func isWin(r resultRow) bool    { return r.FinishedAt(1) }
func isPodium(r resultRow) bool { return r.FinishedWithin(3) }
func isDNF(r resultRow) bool    { return IsDNF(r.Status.Status) }
func points(r resultRow) float64 {
	return r.Points
}

func position(r resultRow) float64 {
	p, _ := r.Position.Get()
	return float64(p)
}

// distinctRaces counts the distinct race ids of rows.
func distinctRaces(rows []resultRow) int {
	return len(lo.UniqBy(rows, func(r resultRow) int { return r.RaceID }))
}

// newestFirst orders results by year desc, round desc.
func newestFirst(a, b resultRow) int {
	return cmp.Or(b.Race.Compare(a.Race), cmp.Compare(b.RaceID, a.RaceID), cmp.Compare(a.ID, b.ID))
}

// hasTime reports whether a session time was recorded. Blank values count
// as missing.
func hasTime(v null.Val[string]) bool {
	t, ok := v.Get()
	return ok && strings.TrimSpace(t) != ""
}

// desc inverts an ascending comparison.
func desc[T cmp.Ordered](a, b T) int {
	return cmp.Compare(b, a)
}
