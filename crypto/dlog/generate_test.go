package dlog

import (
	"errors"
	"testing"

	big "github.com/ncw/gmp"
)

func TestRandomProblemRejectsUnsolvableShapes(t *testing.T) {
	tests := []struct {
		name string
		q    int64
		n    int
		bits int
	}{
		{"n is one", 5, 1, 32},
		{"n is zero", 5, 0, 32},
		{"q not prime", 9, 2, 32},
		{"order wider than p", 5, 20, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := RandomProblem(big.NewInt(tt.q), tt.n, tt.bits)
			var ipe *InvalidPreconditionError
			if !errors.As(err, &ipe) {
				t.Fatalf("expected InvalidPreconditionError, got %v", err)
			}
		})
	}
}

func TestRandomProblemIsSolvable(t *testing.T) {
	pr, secret, err := RandomProblem(big.NewInt(3), 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	sol, err := pr.Solve()
	if err != nil {
		t.Fatalf("generated problem %s did not solve: %s", pr, err)
	}
	if sol.Log.Cmp(secret) != 0 {
		t.Fatalf("got %s, want %s", sol.Log, secret)
	}
}
