package dlog

import (
	"fmt"

	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto/modular"
)

// DiscreteLog finds x with base^x = arg (mod p) when base has order q^n
// for a prime q and n > 1. It runs in O(n^2 log q + n sqrt q).
func DiscreteLog(p, base, arg, q *big.Int, n int) (*big.Int, error) {
	sol, err := (&Problem{P: p, Base: base, Arg: arg, Q: q, N: n}).Solve()
	if err != nil {
		return nil, err
	}
	return sol.Log, nil
}

// pohligHellman returns the base q digits of the logarithm, least
// significant first. It assumes the problem has been validated, except
// that n == 1 is allowed and degenerates to a single BSGS call.
func pohligHellman(p, base, arg, q *big.Int, n int) ([]*big.Int, error) {
	// a[i] = base^(q^(n-1-i)), likewise b[i] for arg.
	// a[0] has order exactly q.
	a := make([]*big.Int, n)
	b := make([]*big.Int, n)
	a[n-1] = new(big.Int).Mod(base, p)
	b[n-1] = new(big.Int).Mod(arg, p)
	for i := n - 2; i >= 0; i-- {
		a[i] = new(big.Int).Exp(a[i+1], q, p)
		b[i] = new(big.Int).Exp(b[i+1], q, p)
	}

	// levels depend on all lower digits, so this is strictly sequential.
	x := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		// gamma = a[i]^x[0] * a[i-1]^x[1] * ... * a[1]^x[i-1]
		gamma := big.NewInt(1)
		for j := 0; j < i; j++ {
			gamma.Mul(gamma, new(big.Int).Exp(a[i-j], x[j], p))
			gamma.Mod(gamma, p)
		}
		gammaInv, err := modular.ModInverse(gamma, p)
		if err != nil {
			return nil, &LevelError{Level: i, Err: err}
		}
		target := modular.ModMul(b[i], gammaInv, p)
		x[i], err = BabyStepGiantStepWithOrder(p, q, a[0], target)
		if err != nil {
			return nil, &LevelError{Level: i, Err: err}
		}
	}
	return x, nil
}

// recombine returns x[0] + x[1]q + ... + x[n-1]q^(n-1) mod q^n.
func recombine(x []*big.Int, q, order *big.Int) *big.Int {
	log := new(big.Int)
	weight := big.NewInt(1)
	for _, digit := range x {
		log = modular.ModAdd(log, modular.ModMul(digit, weight, order), order)
		weight.Mul(weight, q)
	}
	return log
}

// validate checks everything DiscreteLog needs to be correct. Without
// these checks a bad input gives a wrong answer rather than no answer.
func validate(p, base, arg, q *big.Int, n int) error {
	if p == nil || base == nil || arg == nil || q == nil {
		return invalidf("missing parameter")
	}
	if p.Cmp(bigOne) <= 0 {
		return invalidf("p must be > 1, got %s", p)
	}
	if n <= 1 {
		return invalidf("n must be > 1, got %d", n)
	}
	if base.Sign() < 0 || arg.Sign() < 0 {
		return invalidf("base and argument must be non-negative")
	}
	if q.Cmp(bigOne) <= 0 || !q.ProbablyPrime(20) {
		return invalidf("q is not prime: %s", q)
	}
	if q.Cmp(p) >= 0 {
		return invalidf("q must be < p")
	}
	// checked before any power of q is built
	if !orderFits(q, n, p.BitLen()) {
		return invalidf("q^%d cannot divide p-1 for a %d bit p", n, p.BitLen())
	}
	// ord(base) = q^n exactly: base^(q^n) = 1 and base^(q^(n-1)) != 1
	qn1 := modular.Pow(q, n-1)
	qn := new(big.Int).Mul(qn1, q)
	if new(big.Int).Exp(base, qn, p).Cmp(bigOne) != 0 {
		return invalidf("base^(q^n) != 1 mod p")
	}
	if new(big.Int).Exp(base, qn1, p).Cmp(bigOne) == 0 {
		return invalidf("order of base divides q^(n-1), not q^n")
	}
	if new(big.Int).Exp(arg, qn, p).Cmp(bigOne) != 0 {
		return invalidf("argument is not in the subgroup of order q^n")
	}
	return nil
}

// orderFits reports whether q^n can be below 2^bits, using
// q^n >= 2^(n*(bitlen(q)-1)). q must be > 1.
func orderFits(q *big.Int, n int, bits int) bool {
	return n <= (bits-1)/(q.BitLen()-1)
}

// Validate checks the problem parameters.
func (pr *Problem) Validate() error {
	return validate(pr.P, pr.Base, pr.Arg, pr.Q, pr.N)
}

// Solve validates the problem and finds its logarithm.
func (pr *Problem) Solve() (*Solution, error) {
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	digits, err := pohligHellman(pr.P, pr.Base, pr.Arg, pr.Q, pr.N)
	if err != nil {
		return nil, fmt.Errorf("Failed to solve %s: %w", pr, err)
	}
	return &Solution{
		Problem: pr,
		Log:     recombine(digits, pr.Q, pr.Order()),
		Digits:  digits,
	}, nil
}
