// Package modular holds the exact big integer arithmetic the discrete log
// solvers are built from. Every result is reduced into [0, mod).
package modular

import (
	"errors"
	"fmt"

	big "github.com/ncw/gmp"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

var (
	// ErrNegativeExponent is returned by ModPow for exponents < 0. Use
	// ModInverse explicitly if a negative power is wanted.
	ErrNegativeExponent = errors.New("Modular exponent must be non-negative")
	// ErrBadModulus is returned when the modulus is < 1
	ErrBadModulus = errors.New("Modulus must be positive")
)

// NoInverseError is returned when an inverse is requested for a value
// that shares a factor with the modulus.
type NoInverseError struct {
	Value, Modulus *big.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("No inverse of %s modulo %s", e.Value, e.Modulus)
}

func checkModulus(mod *big.Int) error {
	if mod == nil || mod.Cmp(bigOne) < 0 {
		return ErrBadModulus
	}
	return nil
}

// ModPow returns base^exp mod mod
func ModPow(base, exp, mod *big.Int) (*big.Int, error) {
	if err := checkModulus(mod); err != nil {
		return nil, err
	}
	if exp.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	// gmp does square and multiply for us.
	r := new(big.Int).Mod(base, mod)
	return r.Exp(r, exp, mod), nil
}

// ModInverse returns the x in [0, mod) with a*x = 1 mod mod.
func ModInverse(a, mod *big.Int) (*big.Int, error) {
	if err := checkModulus(mod); err != nil {
		return nil, err
	}
	r := new(big.Int).Mod(a, mod)
	if mod.Cmp(bigOne) == 0 {
		// everything is 0 in Z_1
		return r, nil
	}
	// gmp's invert does not give us a usable failure signal, so check
	// co-primality first. GCD wants both arguments positive.
	if r.Sign() == 0 || new(big.Int).GCD(nil, nil, r, mod).Cmp(bigOne) != 0 {
		return nil, &NoInverseError{Value: new(big.Int).Set(a), Modulus: new(big.Int).Set(mod)}
	}
	return r.ModInverse(r, mod), nil
}

// ModMul returns a*b mod mod. The modulus must be positive.
func ModMul(a, b, mod *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, mod)
}

// ModAdd returns a+b mod mod. The modulus must be positive.
func ModAdd(a, b, mod *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, mod)
}

// Pow returns x^k without a modulus, for small k.
func Pow(x *big.Int, k int) *big.Int {
	r := big.NewInt(1)
	for i := 0; i < k; i++ {
		r.Mul(r, x)
	}
	return r
}

// SqrtFloor returns floor(sqrt(n)) by integer Newton (Heron) iteration
// starting from 2^(bitlen(n)/2).
//
// The iteration stops when the next value equals either of the last two,
// which catches the final oscillation between floor and floor+1.
func SqrtFloor(n *big.Int) *big.Int {
	if n.Sign() < 0 {
		panic("modular: square root of negative number")
	}
	if n.Cmp(bigOne) <= 0 {
		return new(big.Int).Set(n)
	}
	half := new(big.Int).Lsh(bigOne, uint(n.BitLen()/2))
	cur := new(big.Int).Set(half)
	for {
		tmp := new(big.Int).Div(n, half)
		tmp.Add(tmp, half)
		tmp.Rsh(tmp, 1)
		if tmp.Cmp(half) == 0 || tmp.Cmp(cur) == 0 {
			// we may have stopped on the upper side of the oscillation
			if new(big.Int).Mul(tmp, tmp).Cmp(n) > 0 {
				tmp.Sub(tmp, bigOne)
			}
			return tmp
		}
		cur = half
		half = tmp
	}
}
