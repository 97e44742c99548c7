package bench

import (
	"fmt"

	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// Example is a problem with a known answer
type Example struct {
	Name    string
	Problem *dlog.Problem
	Want    *big.Int
}

// Examples returns the two textbook examples: one from xntheory and one
// from the Handbook of Applied Cryptography (example 3.66).
func Examples() []*Example {
	return []*Example{
		{
			Name:    "xntheory",
			Problem: &dlog.Problem{P: big.NewInt(181), Base: big.NewInt(62), Arg: big.NewInt(65), Q: big.NewInt(3), N: 2},
			Want:    big.NewInt(5),
		},
		{
			Name:    "handbook",
			Problem: &dlog.Problem{P: big.NewInt(251), Base: big.NewInt(21), Arg: big.NewInt(175), Q: big.NewInt(5), N: 3},
			Want:    big.NewInt(72),
		},
	}
}

// Check runs the example and compares with the known answer
func (ex *Example) Check(rounds int, bar *MaybeProgress) (*Result, error) {
	r, err := RunRounds(ex.Problem, rounds, bar)
	if err != nil {
		return nil, fmt.Errorf("Example %s: %w", ex.Name, err)
	}
	if r.Solution.Log.Cmp(ex.Want) != 0 {
		return r, fmt.Errorf("Example %s: expected %s, got %s", ex.Name, ex.Want, r.Solution.Log)
	}
	return r, nil
}
