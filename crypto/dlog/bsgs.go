package dlog

import (
	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto/modular"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// BabyStepGiantStep finds x with alpha^x = beta (mod modulus), searching
// every exponent below the modulus. The result is the smallest such x.
//
// If beta is not a power of alpha the error is ErrNotFound. Note that a
// result of 0 is a real answer (beta = 1).
func BabyStepGiantStep(modulus, alpha, beta *big.Int) (*big.Int, error) {
	return BabyStepGiantStepWithOrder(modulus, modulus, alpha, beta)
}

// BabyStepGiantStepWithOrder is BabyStepGiantStep with the search bounded by
// a known multiple of the order of alpha, which is far smaller than the
// modulus when alpha lives in a small subgroup.
func BabyStepGiantStepWithOrder(modulus, order, alpha, beta *big.Int) (*big.Int, error) {
	if modulus.Cmp(bigTwo) < 0 {
		return nil, invalidf("modulus must be > 1, got %s", modulus)
	}
	if order.Sign() < 1 {
		return nil, invalidf("order must be positive, got %s", order)
	}
	if alpha.Sign() < 0 || beta.Sign() < 0 {
		return nil, invalidf("base and argument must be non-negative")
	}
	alpha = new(big.Int).Mod(alpha, modulus)
	beta = new(big.Int).Mod(beta, modulus)

	sqrt := modular.SqrtFloor(order)
	m := new(big.Int).Add(sqrt, bigOne)

	// baby steps: alpha^j for j in [0, sqrt]
	table := modular.NewPowerTable(tableSize(m))
	v := big.NewInt(1)
	for j := range modular.Closed(bigZero, sqrt) {
		table.Put(j, v)
		v = modular.ModMul(v, alpha, modulus)
	}

	// alpha^-m
	alphaInv, err := modular.ModInverse(alpha, modulus)
	if err != nil {
		return nil, err
	}
	alphaMinusM, err := modular.ModPow(alphaInv, m, modulus)
	if err != nil {
		return nil, err
	}

	// giant steps: beta * alpha^(-im) for i in [0, sqrt]
	gamma := beta
	for i := range modular.Closed(bigZero, sqrt) {
		if j, ok := table.Exponent(gamma); ok {
			x := i.Mul(i, m)
			return x.Add(x, j), nil
		}
		gamma = modular.ModMul(gamma, alphaMinusM, modulus)
	}
	return nil, ErrNotFound
}

// only a capacity hint, so cap it for huge bounds.
func tableSize(m *big.Int) int {
	const maxHint = 1 << 20
	if m.BitLen() > 20 {
		return maxHint
	}
	return int(m.Int64())
}
