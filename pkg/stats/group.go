// Package stats contains the generic aggregation primitives the reports are
// composed of: grouping, ratios, sample filtering, partition ranking and
// rolling windows.
package stats

import (
	"cmp"
	"context"
	"slices"

	"github.com/samber/lo"
)

// Group is one partition of rows sharing the same key. Rows keep the order
// they had in the input.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

func (g Group[K, T]) Count() int {
	return len(g.Rows)
}

// GroupBy partitions rows by key. The groups are sorted by compareKey, so
// the output never depends on map iteration order.
func GroupBy[K comparable, T any](
	rows []T,
	key func(T) K,
	compareKey func(a, b K) int,
) []Group[K, T] {
	grouped := lo.GroupBy(rows, key)
	ret := make([]Group[K, T], 0, len(grouped))
	for k, v := range grouped {
		ret = append(ret, Group[K, T]{Key: k, Rows: v})
	}
	slices.SortFunc(ret, func(a, b Group[K, T]) int {
		return compareKey(a.Key, b.Key)
	})
	return ret
}

// GroupByOrdered is GroupBy for keys with a natural order.
func GroupByOrdered[K cmp.Ordered, T any](rows []T, key func(T) K) []Group[K, T] {
	return GroupBy(rows, key, cmp.Compare[K])
}

// MinSample drops all groups with less than n rows.
func MinSample[K comparable, T any](groups []Group[K, T], n int) []Group[K, T] {
	return lo.Filter(groups, func(g Group[K, T], _ int) bool {
		return g.Count() >= n
	})
}

// Collect maps every group to an output row. Groups for which fn returns
// false are omitted. The context is checked between groups, a cancelled
// context aborts the whole collection without partial result.
func Collect[K comparable, T, R any](
	ctx context.Context,
	groups []Group[K, T],
	fn func(Group[K, T]) (R, bool),
) ([]R, error) {
	ret := make([]R, 0, len(groups))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r, ok := fn(g); ok {
			ret = append(ret, r)
		}
	}
	return ret, nil
}

// CountBy counts the rows matching pred.
func CountBy[T any](rows []T, pred func(T) bool) int {
	return lo.CountBy(rows, pred)
}

// SumBy sums the values extracted by f.
func SumBy[T any](rows []T, f func(T) float64) float64 {
	return lo.SumBy(rows, f)
}

// AvgBy averages the values extracted by f. Returns 0 for no rows.
func AvgBy[T any](rows []T, f func(T) float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	return SumBy(rows, f) / float64(len(rows))
}

// Limit returns at most n rows. n <= 0 means no limit.
func Limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
