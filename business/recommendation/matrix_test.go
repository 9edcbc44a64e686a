package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeOrders() []Order[uint64] {
	return []Order[uint64]{
		{ID: "o1", ProductIDs: []uint64{1, 2}},
		{ID: "o2", ProductIDs: []uint64{1, 3}},
		{ID: "o3", ProductIDs: []uint64{2, 3}},
	}
}

func TestBuildMatrix_ThreeOrders(t *testing.T) {
	m, err := BuildMatrix(threeOrders())
	require.NoError(t, err)

	assert.Equal(t, map[uint64]int{2: 1, 3: 1}, m[1])
	assert.Equal(t, map[uint64]int{1: 1, 3: 1}, m[2])
	assert.Equal(t, map[uint64]int{1: 1, 2: 1}, m[3])
	assert.Equal(t, 6, m.Pairs())
}

func TestBuildMatrix_SingleOrderDistinctProducts(t *testing.T) {
	ids := []uint64{4, 7, 9, 11}
	m, err := BuildMatrix([]Order[uint64]{{ID: "o", ProductIDs: ids}})
	require.NoError(t, err)

	for _, a := range ids {
		_, self := m[a][a]
		assert.False(t, self, "self entry for %d", a)
		for _, b := range ids {
			if a == b {
				continue
			}
			assert.Equal(t, 1, m.Count(a, b), "m[%d][%d]", a, b)
		}
	}
}

func TestBuildMatrix_DuplicatesInflateCounts(t *testing.T) {
	// 1 appears twice: each copy pairs with 2, and the copies never pair with each other
	m, err := BuildMatrix([]Order[uint64]{{ID: "o", ProductIDs: []uint64{1, 1, 2}}})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Count(1, 2))
	assert.Equal(t, 2, m.Count(2, 1))
	assert.Equal(t, 0, m.Count(1, 1))
	_, self := m[1][1]
	assert.False(t, self)
}

func TestBuildMatrix_AccumulatesAcrossOrders(t *testing.T) {
	m, err := BuildMatrix([]Order[uint64]{
		{ID: "a", ProductIDs: []uint64{1, 2}},
		{ID: "b", ProductIDs: []uint64{2, 1}},
		{ID: "c", ProductIDs: []uint64{1, 2, 5}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Count(1, 2))
	assert.Equal(t, 1, m.Count(5, 1))
}

func TestBuildMatrix_EmptyAndSingleItemOrders(t *testing.T) {
	m, err := BuildMatrix([]Order[uint64]{
		{ID: "empty"},
		{ID: "single", ProductIDs: []uint64{8}},
	})
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestBuildMatrix_RejectsMissingProductID(t *testing.T) {
	m, err := BuildMatrix([]Order[uint64]{
		{ID: "ok", ProductIDs: []uint64{1, 2}},
		{ID: "bad", ProductIDs: []uint64{3, 0}},
	})
	require.ErrorIs(t, err, ErrInvalidOrder)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Nil(t, m)
}

func TestBuildMatrix_StringKeys(t *testing.T) {
	m, err := BuildMatrix([]Order[string]{
		{ID: "o1", ProductIDs: []string{"sku-a", "sku-b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count("sku-a", "sku-b"))

	_, err = BuildMatrix([]Order[string]{{ID: "o2", ProductIDs: []string{"sku-a", ""}}})
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestRecommend(t *testing.T) {
	base, err := BuildMatrix(threeOrders())
	require.NoError(t, err)

	tests := []struct {
		name  string
		cart  []uint64
		m     Matrix[uint64]
		limit int
		want  []uint64
	}{
		{
			name:  "single cart item ties break by ascending related key",
			cart:  []uint64{1},
			m:     base,
			limit: 5,
			want:  []uint64{2, 3},
		},
		{
			name:  "scores accumulate across cart items",
			cart:  []uint64{1, 2},
			m:     base,
			limit: 5,
			want:  []uint64{3},
		},
		{
			name:  "empty matrix",
			cart:  []uint64{1},
			m:     Matrix[uint64]{},
			limit: 5,
			want:  []uint64{},
		},
		{
			name:  "nil matrix",
			cart:  []uint64{1},
			m:     nil,
			limit: 5,
			want:  []uint64{},
		},
		{
			name:  "cart item missing from matrix contributes nothing",
			cart:  []uint64{42},
			m:     base,
			limit: 5,
			want:  []uint64{},
		},
		{
			name: "higher score first",
			cart: []uint64{1},
			m: Matrix[uint64]{
				1: {2: 1, 3: 4, 4: 2},
			},
			limit: 5,
			want:  []uint64{3, 4, 2},
		},
		{
			name: "limit truncates",
			cart: []uint64{1},
			m: Matrix[uint64]{
				1: {2: 1, 3: 4, 4: 2},
			},
			limit: 2,
			want:  []uint64{3, 4},
		},
		{
			name: "zero limit falls back to default",
			cart: []uint64{1},
			m: Matrix[uint64]{
				1: {2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1},
			},
			limit: 0,
			want:  []uint64{2, 3, 4, 5, 6},
		},
		{
			name: "ties follow cart order before key order",
			cart: []uint64{9, 1},
			m: Matrix[uint64]{
				9: {5: 1},
				1: {2: 1},
			},
			limit: 5,
			want:  []uint64{5, 2},
		},
		{
			name: "duplicate cart entries count once",
			cart: []uint64{1, 1, 1},
			m: Matrix[uint64]{
				1: {2: 1},
				3: {4: 2},
			},
			limit: 5,
			want:  []uint64{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.cart, tt.m, tt.limit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecommend_NeverReturnsCartItems(t *testing.T) {
	m := Matrix[uint64]{
		1: {2: 5, 3: 1, 4: 2},
		2: {1: 5, 4: 7},
		4: {1: 2, 2: 7, 3: 3},
	}
	cart := []uint64{1, 2, 4}

	got := Recommend(cart, m, 10)
	assert.Equal(t, []uint64{3}, got)
	for _, id := range got {
		assert.NotContains(t, cart, id)
	}
}

func TestRecommend_NonIncreasingAndReproducible(t *testing.T) {
	m := Matrix[uint64]{
		1: {10: 3, 11: 3, 12: 1, 13: 5},
		2: {10: 1, 12: 3, 14: 2, 15: 2},
	}
	cart := []uint64{2, 1}

	first := Recommend(cart, m, 10)
	require.Len(t, first, 6)

	score := func(id uint64) int { return m.Count(1, id) + m.Count(2, id) }
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, score(first[i-1]), score(first[i]))
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Recommend(cart, m, 10))
	}
}

func TestRecommend_DoesNotMutateInputs(t *testing.T) {
	m := Matrix[uint64]{1: {2: 1, 3: 2}, 2: {1: 1}}
	cart := []uint64{1, 1}

	_ = Recommend(cart, m, 5)

	assert.Equal(t, Matrix[uint64]{1: {2: 1, 3: 2}, 2: {1: 1}}, m)
	assert.Equal(t, []uint64{1, 1}, cart)
}
