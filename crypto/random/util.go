package random

import (
	"crypto/rand"
	"fmt"

	gbig "math/big"

	big "github.com/ncw/gmp"
)

var bigOne = big.NewInt(1)

// Int returns a random int < max
func Int(max *big.Int) *big.Int {
	r, err := rand.Int(rand.Reader, new(gbig.Int).SetBytes(max.Bytes()))
	if err != nil {
		// the rand.Reader is broken. Nothing we can do.
		panic(err)
	}
	return new(big.Int).SetBytes(r.Bytes())
}

// PrimePowerPrime returns a prime P with bits bits such that q^n divides P-1,
// i.e. P = k * q^n + 1. This guarantees Z_P* has a subgroup of order q^n.
func PrimePowerPrime(q *big.Int, n int, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("Invalid bit size %d", bits)
	}
	qn := big.NewInt(1)
	for i := 0; i < n; i++ {
		qn.Mul(qn, q)
	}
	// k is drawn from [lo, hi] where lo*q^n > 2^(bits-1) and
	// hi*q^n < 2^bits, so every candidate has exactly bits bits.
	top := new(big.Int).Lsh(bigOne, uint(bits))
	lo := new(big.Int).Rsh(top, 1)
	lo.Div(lo, qn)
	lo.Add(lo, bigOne)
	hi := new(big.Int).Sub(top, bigOne)
	hi.Div(hi, qn)
	span := new(big.Int).Sub(hi, lo)
	if span.Sign() < 0 {
		return nil, fmt.Errorf("%d bits is too small for a subgroup of order %s^%d", bits, q, n)
	}
	span.Add(span, bigOne)

	candidate := func(k *big.Int) *big.Int {
		p := new(big.Int).Mul(k, qn)
		p.Add(p, bigOne)
		// we use 20 as that is what rand.Prime uses
		if p.BitLen() == bits && p.ProbablyPrime(20) {
			return p
		}
		return nil
	}

	if span.Cmp(exhaustiveSpan) <= 0 {
		// few candidates: try each one once, from a random starting point
		count := span.Int64()
		offset := Int(span).Int64()
		for i := int64(0); i < count; i++ {
			k := big.NewInt((offset + i) % count)
			if p := candidate(k.Add(k, lo)); p != nil {
				return p, nil
			}
		}
		return nil, fmt.Errorf("No prime of %d bits is 1 mod %s^%d", bits, q, n)
	}
	// primes have density about 1/(bits*ln 2) so this bound is generous
	for attempt := 0; attempt < 64*bits; attempt++ {
		k := Int(span)
		if p := candidate(k.Add(k, lo)); p != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("Gave up looking for a %d bit prime that is 1 mod %s^%d", bits, q, n)
}

// below this many multipliers PrimePowerPrime tries them all
var exhaustiveSpan = big.NewInt(1 << 12)

// ElementOfOrder finds an element of Z_P* with order exactly q^n. q^n must
// divide P-1 and q must be prime.
func ElementOfOrder(p, q *big.Int, n int) *big.Int {
	qn1 := big.NewInt(1)
	for i := 0; i < n-1; i++ {
		qn1.Mul(qn1, q)
	}
	qn := new(big.Int).Mul(qn1, q)
	cofactor := new(big.Int).Sub(p, bigOne)
	cofactor.Div(cofactor, qn)

	pMinusTwo := new(big.Int).Sub(p, big.NewInt(2))
	var test big.Int
	for {
		// g in [2, p-1]
		g := Int(pMinusTwo)
		g.Add(g, big.NewInt(2))
		h := new(big.Int).Exp(g, cofactor, p)
		// h^(q^n) = g^(p-1) = 1, so the order of h divides q^n. It is
		// exactly q^n unless h^(q^(n-1)) = 1.
		if test.Exp(h, qn1, p).Cmp(bigOne) != 0 {
			return h
		}
	}
}
