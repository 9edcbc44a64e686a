package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_SortedKeys(t *testing.T) {
	m := Matrix[uint64]{
		3: {1: 1, 2: 1},
		1: {3: 1, 2: 1},
		2: {3: 1, 1: 1},
	}

	raw, err := Encode(m, Uint64Keys())
	require.NoError(t, err)
	assert.Equal(t, `{"1":{"2":1,"3":1},"2":{"1":1,"3":1},"3":{"1":1,"2":1}}`, string(raw))
}

func TestEncode_EmptyMatrix(t *testing.T) {
	raw, err := Encode(Matrix[uint64]{}, Uint64Keys())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(raw))
}

func TestEncode_IdenticalBytesForEqualMatrices(t *testing.T) {
	a, err := BuildMatrix(threeOrders())
	require.NoError(t, err)

	reversed := threeOrders()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	b, err := BuildMatrix(reversed)
	require.NoError(t, err)

	rawA, err := Encode(a, Uint64Keys())
	require.NoError(t, err)
	rawB, err := Encode(b, Uint64Keys())
	require.NoError(t, err)

	assert.Equal(t, rawA, rawB)
}

func TestDecode_RoundTrip(t *testing.T) {
	m, err := BuildMatrix(threeOrders())
	require.NoError(t, err)

	raw, err := Encode(m, Uint64Keys())
	require.NoError(t, err)

	got, err := Decode(raw, Uint64Keys())
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestDecode_KeepsAsymmetricEntries(t *testing.T) {
	got, err := Decode([]byte(`{"1":{"2":4},"2":{"1":1}}`), Uint64Keys())
	require.NoError(t, err)

	assert.Equal(t, 4, got.Count(1, 2))
	assert.Equal(t, 1, got.Count(2, 1))
}

func TestDecode_EmptyRowIsKept(t *testing.T) {
	got, err := Decode([]byte(`{"1":{}}`), Uint64Keys())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{"1":`},
		{name: "array", raw: `[1,2,3]`},
		{name: "row is not an object", raw: `{"1":5}`},
		{name: "count is a string", raw: `{"1":{"2":"x"}}`},
		{name: "non numeric product key", raw: `{"abc":{"2":1}}`},
		{name: "non numeric related key", raw: `{"1":{"two":1}}`},
		{name: "zero product key", raw: `{"0":{"2":1}}`},
		{name: "negative count", raw: `{"1":{"2":-1}}`},
		{name: "empty input", raw: ``},
		{name: "whitespace only", raw: "  \n"},
		{name: "null blob", raw: `null`},
		{name: "null blob with padding", raw: " null\n"},
		{name: "null row", raw: `{"1":null}`},
		{name: "null count", raw: `{"1":{"2":null}}`},
		{name: "null count next to valid ones", raw: `{"1":{"2":3},"2":{"1":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.raw), Uint64Keys())
			assert.ErrorIs(t, err, ErrCorruptMatrix)
			assert.Nil(t, m)
		})
	}
}

func TestStringKeys_RoundTrip(t *testing.T) {
	m := Matrix[string]{"sku-b": {"sku-a": 2}, "sku-a": {"sku-b": 2}}

	raw, err := Encode(m, StringKeys())
	require.NoError(t, err)
	assert.Equal(t, `{"sku-a":{"sku-b":2},"sku-b":{"sku-a":2}}`, string(raw))

	got, err := Decode(raw, StringKeys())
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = Decode([]byte(`{"":{"sku-a":1}}`), StringKeys())
	assert.ErrorIs(t, err, ErrCorruptMatrix)
}
