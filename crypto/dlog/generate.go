package dlog

import (
	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto/random"
)

// RandomProblem creates a solvable problem with a p of the given bit size.
// The logarithm chosen is returned alongside so callers can check answers.
func RandomProblem(q *big.Int, n int, bits int) (*Problem, *big.Int, error) {
	if q.Cmp(bigOne) <= 0 || !q.ProbablyPrime(20) {
		return nil, nil, invalidf("q is not prime: %s", q)
	}
	if n <= 1 {
		return nil, nil, invalidf("n must be > 1, got %d", n)
	}
	if bits < 2 || !orderFits(q, n, bits) {
		return nil, nil, invalidf("q^%d does not fit in %d bits", n, bits)
	}
	p, err := random.PrimePowerPrime(q, n, bits)
	if err != nil {
		return nil, nil, err
	}
	pr := &Problem{P: p, Base: random.ElementOfOrder(p, q, n), Q: q, N: n}
	x := random.Int(pr.Order())
	pr.Arg = new(big.Int).Exp(pr.Base, x, p)
	return pr, x, nil
}
