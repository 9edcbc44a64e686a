package recommendation

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// DefaultLimit is the number of recommendations returned when the caller passes no limit.
const DefaultLimit = 5

// Matrix is a co-occurrence matrix: product -> related product -> number of times both
// appeared in the same order. Counts are never negative.
//
// The matrix is taken literally: a build always credits both directions of a pair, but a
// matrix loaded from a store is not forced back into symmetry.
type Matrix[K cmp.Ordered] map[K]map[K]int

// Order is one past purchase, as far as the engine cares about it.
type Order[K cmp.Ordered] struct {
	ID         string
	ProductIDs []K
}

// Count returns m[a][b], zero when absent.
func (m Matrix[K]) Count(a, b K) int {
	return m[a][b]
}

// Related returns the related products of p in ascending key order.
func (m Matrix[K]) Related(p K) []K {
	return slices.Sorted(maps.Keys(m[p]))
}

// Pairs returns the number of directed (a, b) entries.
func (m Matrix[K]) Pairs() int {
	n := 0
	for _, row := range m {
		n += len(row)
	}
	return n
}

func (m Matrix[K]) add(a, b K, n int) {
	row, ok := m[a]
	if !ok {
		row = make(map[K]int)
		m[a] = row
	}
	row[b] += n
}

// BuildMatrix counts every ordered pair (p1, p2) with p1 != p2 inside each order.
// Duplicate entries within an order are counted as often as they appear; identical ids are
// never paired with each other. Validation runs before counting so a bad order never leaves a
// partial matrix behind.
func BuildMatrix[K cmp.Ordered](orders []Order[K]) (Matrix[K], error) {
	var zero K
	for i, o := range orders {
		for _, p := range o.ProductIDs {
			if p == zero {
				return nil, fmt.Errorf("%w: order %q (index %d) has an empty product id", ErrInvalidOrder, o.ID, i)
			}
		}
	}

	m := make(Matrix[K])
	for _, o := range orders {
		for _, p1 := range o.ProductIDs {
			for _, p2 := range o.ProductIDs {
				if p1 == p2 {
					continue
				}
				m.add(p1, p2, 1)
			}
		}
	}

	return m, nil
}

// Recommend scores products related to the cart and returns at most limit of them, best first.
//
// Each distinct cart product contributes m[p][related] to every related product that is not
// itself in the cart. Equal scores keep the order in which candidates were first scored: cart
// products in cart order, each product's related entries in ascending key order.
// Neither the cart nor the matrix is modified.
func Recommend[K cmp.Ordered](cart []K, m Matrix[K], limit int) []K {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(m) == 0 {
		return []K{}
	}

	inCart := make(map[K]struct{}, len(cart))
	distinct := make([]K, 0, len(cart))
	for _, p := range cart {
		if _, ok := inCart[p]; ok {
			continue
		}
		inCart[p] = struct{}{}
		distinct = append(distinct, p)
	}

	scores := make(map[K]int)
	candidates := make([]K, 0)
	for _, p := range distinct {
		row, ok := m[p]
		if !ok {
			continue
		}
		for _, related := range m.Related(p) {
			if _, ok := inCart[related]; ok {
				continue
			}
			if _, seen := scores[related]; !seen {
				candidates = append(candidates, related)
			}
			scores[related] += row[related]
		}
	}

	slices.SortStableFunc(candidates, func(a, b K) int {
		return cmp.Compare(scores[b], scores[a])
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}
