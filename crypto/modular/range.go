package modular

import (
	"iter"

	big "github.com/ncw/gmp"
)

// Closed iterates the integers in [start, end] in increasing order.
// Each value yielded is a fresh copy, so callers may keep it.
func Closed(start, end *big.Int) iter.Seq[*big.Int] {
	return func(yield func(*big.Int) bool) {
		for i := new(big.Int).Set(start); i.Cmp(end) <= 0; i.Add(i, bigOne) {
			if !yield(new(big.Int).Set(i)) {
				return
			}
		}
	}
}
