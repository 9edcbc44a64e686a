package recommendation

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// KeyCodec converts product ids to and from the string keys used on the wire.
type KeyCodec[K cmp.Ordered] interface {
	FormatKey(K) string
	ParseKey(string) (K, error)
}

type uint64Keys struct{}

// Uint64Keys encodes numeric product ids as base-10 strings.
func Uint64Keys() KeyCodec[uint64] { return uint64Keys{} }

func (uint64Keys) FormatKey(k uint64) string { return strconv.FormatUint(k, 10) }

func (uint64Keys) ParseKey(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

type stringKeys struct{}

// StringKeys keeps string product ids as they are.
func StringKeys() KeyCodec[string] { return stringKeys{} }

func (stringKeys) FormatKey(k string) string { return k }

func (stringKeys) ParseKey(s string) (string, error) { return s, nil }

// Encode renders m as a JSON object of objects, e.g. {"1":{"2":3},"2":{"1":3}}.
// Keys are emitted in sorted order so equal matrices always encode to equal bytes.
func Encode[K cmp.Ordered](m Matrix[K], keys KeyCodec[K]) ([]byte, error) {
	wire := make(map[string]map[string]int, len(m))
	for p, row := range m {
		outer := keys.FormatKey(p)
		if _, dup := wire[outer]; dup {
			return nil, fmt.Errorf("encode matrix: product key %q is not unique", outer)
		}
		inner := make(map[string]int, len(row))
		for related, count := range row {
			inner[keys.FormatKey(related)] = count
		}
		wire[outer] = inner
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode matrix: %w", err)
	}

	return raw, nil
}

// Decode parses the wire form back into a typed matrix. Anything that is not an object of
// objects of non-negative integers keyed by valid product ids is reported as ErrCorruptMatrix.
func Decode[K cmp.Ordered](raw []byte, keys KeyCodec[K]) (Matrix[K], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty blob", ErrCorruptMatrix)
	}
	if isNull(trimmed) {
		return nil, fmt.Errorf("%w: null blob", ErrCorruptMatrix)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptMatrix, err)
	}

	var zero K
	m := make(Matrix[K], len(wire))
	for outer, rawRow := range wire {
		p, err := keys.ParseKey(outer)
		if err != nil || p == zero {
			return nil, fmt.Errorf("%w: bad product key %q", ErrCorruptMatrix, outer)
		}
		if isNull(bytes.TrimSpace(rawRow)) {
			return nil, fmt.Errorf("%w: null row for %q", ErrCorruptMatrix, outer)
		}

		var row map[string]*int
		if err := json.Unmarshal(rawRow, &row); err != nil {
			return nil, fmt.Errorf("%w: row %q: %w", ErrCorruptMatrix, outer, err)
		}

		for inner, count := range row {
			related, err := keys.ParseKey(inner)
			if err != nil || related == zero {
				return nil, fmt.Errorf("%w: bad related key %q under %q", ErrCorruptMatrix, inner, outer)
			}
			if count == nil {
				return nil, fmt.Errorf("%w: null count for %q -> %q", ErrCorruptMatrix, outer, inner)
			}
			if *count < 0 {
				return nil, fmt.Errorf("%w: negative count %d for %q -> %q", ErrCorruptMatrix, *count, outer, inner)
			}
			m.add(p, related, *count)
		}
	}

	return m, nil
}

func isNull(b []byte) bool {
	return bytes.Equal(b, []byte("null"))
}
