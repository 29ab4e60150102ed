package analytics

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Group is one bucket produced by GroupBy.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy buckets rows by key. Groups come back in first-seen key order and
// rows keep their input order, so results never depend on map iteration.
func GroupBy[K comparable, T any](rows []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int)
	var groups []Group[K, T]
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// SortGroups orders groups by the given key comparison.
func SortGroups[K comparable, T any](groups []Group[K, T], less func(a, b K) int) {
	slices.SortStableFunc(groups, func(a, b Group[K, T]) int { return less(a.Key, b.Key) })
}

// SumDecimal reduces rows to the sum of f.
func SumDecimal[T any](rows []T, f func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(f(r))
	}
	return total
}

// SumInt reduces rows to the integer sum of f.
func SumInt[T any, N ~int | ~int64](rows []T, f func(T) N) N {
	var total N
	for _, r := range rows {
		total += f(r)
	}
	return total
}
