package dlog

import (
	"errors"
	"testing"

	big "github.com/ncw/gmp"
)

func TestBabyStepGiantStep(t *testing.T) {
	// 2 is a primitive root mod 101
	modulus := big.NewInt(101)
	alpha := big.NewInt(2)
	for k := int64(0); k < 100; k++ {
		beta := new(big.Int).Exp(alpha, big.NewInt(k), modulus)
		x, err := BabyStepGiantStep(modulus, alpha, beta)
		if err != nil {
			t.Fatalf("2^x = %s mod 101: %s", beta, err)
		}
		if x.Int64() != k {
			t.Errorf("2^x = %s mod 101: got x=%s, want %d", beta, x, k)
		}
	}
}

func TestBabyStepGiantStepSmallestExponent(t *testing.T) {
	// 62 has order 9 mod 181, so 65 = 62^5 = 62^14 = ...
	x, err := BabyStepGiantStep(big.NewInt(181), big.NewInt(62), big.NewInt(65))
	if err != nil {
		t.Fatal(err)
	}
	if x.Int64() != 5 {
		t.Fatalf("expected smallest exponent 5, got %s", x)
	}
}

func TestBabyStepGiantStepZeroIsAnAnswer(t *testing.T) {
	x, err := BabyStepGiantStep(big.NewInt(101), big.NewInt(2), big.NewInt(1))
	if err != nil {
		t.Fatalf("log of 1 should be 0, got error %s", err)
	}
	if x.Sign() != 0 {
		t.Fatalf("log of 1 should be 0, got %s", x)
	}
}

func TestBabyStepGiantStepNotFound(t *testing.T) {
	// the powers of 2 mod 7 are {1, 2, 4}
	x, err := BabyStepGiantStep(big.NewInt(7), big.NewInt(2), big.NewInt(3))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got x=%v err=%v", x, err)
	}
	if x != nil {
		t.Fatalf("expected no value on failure, got %s", x)
	}
}

func TestBabyStepGiantStepNoInverse(t *testing.T) {
	_, err := BabyStepGiantStep(big.NewInt(6), big.NewInt(2), big.NewInt(4))
	var nie *NoInverseError
	if !errors.As(err, &nie) {
		t.Fatalf("expected NoInverseError, got %v", err)
	}
}

func TestBabyStepGiantStepInvalid(t *testing.T) {
	var ipe *InvalidPreconditionError
	if _, err := BabyStepGiantStep(big.NewInt(1), big.NewInt(1), big.NewInt(1)); !errors.As(err, &ipe) {
		t.Errorf("modulus 1 should be rejected, got %v", err)
	}
	if _, err := BabyStepGiantStep(big.NewInt(7), big.NewInt(-2), big.NewInt(1)); !errors.As(err, &ipe) {
		t.Errorf("negative base should be rejected, got %v", err)
	}
	if _, err := BabyStepGiantStepWithOrder(big.NewInt(7), big.NewInt(0), big.NewInt(2), big.NewInt(1)); !errors.As(err, &ipe) {
		t.Errorf("order 0 should be rejected, got %v", err)
	}
}

func TestBabyStepGiantStepWithOrder(t *testing.T) {
	// a[0] for the first worked example: 62^3 mod 181 has order 3
	modulus := big.NewInt(181)
	alpha := new(big.Int).Exp(big.NewInt(62), big.NewInt(3), modulus)
	for k := int64(0); k < 3; k++ {
		beta := new(big.Int).Exp(alpha, big.NewInt(k), modulus)
		x, err := BabyStepGiantStepWithOrder(modulus, big.NewInt(3), alpha, beta)
		if err != nil {
			t.Fatal(err)
		}
		if x.Int64() != k {
			t.Errorf("got %s want %d", x, k)
		}
	}
	// 2 is not in the order 3 subgroup
	if _, err := BabyStepGiantStepWithOrder(modulus, big.NewInt(3), alpha, big.NewInt(2)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBabyStepGiantStepRandom(t *testing.T) {
	pr, _, err := RandomProblem(big.NewInt(7), 2, 24)
	if err != nil {
		t.Fatal(err)
	}
	x, err := BabyStepGiantStep(pr.P, pr.Base, pr.Arg)
	if err != nil {
		t.Fatal(err)
	}
	if new(big.Int).Exp(pr.Base, x, pr.P).Cmp(pr.Arg) != 0 {
		t.Fatalf("%s^%s != %s mod %s", pr.Base, x, pr.Arg, pr.P)
	}
}
