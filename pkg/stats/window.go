package stats

import (
	"slices"
)

// TopNByPartition ranks the rows of every partition with rank (stable, so
// rows comparing equal keep their input order) and keeps the first n of
// each partition. Partitions are emitted in comparePartition order.
func TopNByPartition[P comparable, T any](
	rows []T,
	partition func(T) P,
	comparePartition func(a, b P) int,
	rank func(a, b T) int,
	n int,
) []Group[P, T] {
	groups := GroupBy(rows, partition, comparePartition)
	for i := range groups {
		ranked := slices.Clone(groups[i].Rows)
		slices.SortStableFunc(ranked, rank)
		groups[i].Rows = Limit(ranked, n)
	}
	return groups
}

// RollingWindow keeps, per entity, the n most recent rows. newerFirst must
// order rows newest first with a unique key per entity (e.g. year desc,
// round desc) so the window is deterministic. Rows of each group are
// returned newest first.
func RollingWindow[K comparable, T any](
	rows []T,
	entity func(T) K,
	compareEntity func(a, b K) int,
	newerFirst func(a, b T) int,
	n int,
) []Group[K, T] {
	return TopNByPartition(rows, entity, compareEntity, newerFirst, n)
}
