package modular

import (
	big "github.com/ncw/gmp"
)

type tableEntry struct {
	exp, value *big.Int
}

// PowerTable records exponent -> power pairs and can answer the reverse
// question "which exponent gave this value".
//
// *big.Int is a pointer so it cannot key a map; the index is keyed on the
// big-endian bytes of the (already reduced, so non-negative) value instead.
type PowerTable struct {
	entries []tableEntry
	index   map[string]int
}

// NewPowerTable allocates a table with room for size entries
func NewPowerTable(size int) *PowerTable {
	return &PowerTable{
		entries: make([]tableEntry, 0, size),
		index:   make(map[string]int, size),
	}
}

func tableKey(x *big.Int) string {
	return string(x.Bytes())
}

// Put records value = base^exp. If the value is already present the
// earlier (smaller) exponent is kept.
func (t *PowerTable) Put(exp, value *big.Int) {
	k := tableKey(value)
	if _, ok := t.index[k]; ok {
		return
	}
	t.index[k] = len(t.entries)
	t.entries = append(t.entries, tableEntry{
		exp:   new(big.Int).Set(exp),
		value: new(big.Int).Set(value),
	})
}

// Len is the number of distinct values held.
func (t *PowerTable) Len() int {
	return len(t.entries)
}

// Exponent returns the exponent recorded for value.
func (t *PowerTable) Exponent(value *big.Int) (*big.Int, bool) {
	i, ok := t.index[tableKey(value)]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(t.entries[i].exp), true
}

// FindKeyByValue is the linear scan version of Exponent. It walks the
// entries in insertion order and returns the first match. The solvers use
// Exponent; this is kept as the reference it is tested against.
func (t *PowerTable) FindKeyByValue(value *big.Int) (*big.Int, bool) {
	for _, e := range t.entries {
		if e.value.Cmp(value) == 0 {
			return new(big.Int).Set(e.exp), true
		}
	}
	return nil, false
}
