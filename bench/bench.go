// Package bench is the harness around the solver: it times calls, computes
// the analytic cost model and runs the worked examples. Nothing in here is
// visible to the algorithms themselves.
package bench

import (
	"fmt"
	"strconv"
	"time"

	big "github.com/ncw/gmp"
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
	"github.com/thechriswalker/go-dlog/crypto/modular"
)

// Result of a timed solve
type Result struct {
	Solution   *dlog.Solution
	Elapsed    time.Duration
	Complexity *big.Int
}

// Complexity is the cost model n^2 log2(q) + n sqrt(q), with log2 taken as
// the bit length and sqrt as the floor square root.
func Complexity(q *big.Int, n int) *big.Int {
	nn := big.NewInt(int64(n))
	c := new(big.Int).Mul(nn, nn)
	c.Mul(c, big.NewInt(int64(q.BitLen())))
	return c.Add(c, new(big.Int).Mul(nn, modular.SqrtFloor(q)))
}

// Run solves the problem once, timing only the solve.
func Run(pr *dlog.Problem) (*Result, error) {
	log.Debug().
		Str("p", pr.P.String()).
		Str("base", pr.Base.String()).
		Str("arg", pr.Arg.String()).
		Str("q", pr.Q.String()).
		Int("n", pr.N).
		Msg("Solving")

	start := time.Now()
	sol, err := pr.Solve()
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	r := &Result{
		Solution:   sol,
		Elapsed:    elapsed,
		Complexity: Complexity(pr.Q, pr.N),
	}
	log.Info().
		Str("log", sol.Log.String()).
		Dur("elapsed", elapsed).
		Str("complexity", r.Complexity.String()).
		Msg("Discrete logarithm")
	return r, nil
}

// RunRounds solves the same problem repeatedly and reports the mean time.
// Single solves of tiny problems are too quick to compare meaningfully.
func RunRounds(pr *dlog.Problem, rounds int, bar *MaybeProgress) (*Result, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("Need at least one round, got %d", rounds)
	}
	var total time.Duration
	var sol *dlog.Solution
	var err error
	for i := 0; i < rounds; i++ {
		start := time.Now()
		sol, err = pr.Solve()
		total += time.Since(start)
		if err != nil {
			return nil, err
		}
		bar.Increment()
	}
	return &Result{
		Solution:   sol,
		Elapsed:    total / time.Duration(rounds),
		Complexity: Complexity(pr.Q, pr.N),
	}, nil
}

// Alignment compares how much slower the second run was with how much more
// expensive the model says it should be. 1 means perfectly aligned.
func Alignment(first, second *Result) float64 {
	if first.Elapsed == 0 || first.Complexity.Sign() == 0 {
		return 0
	}
	timeRatio := float64(second.Elapsed) / float64(first.Elapsed)
	complexityRatio := toFloat(second.Complexity) / toFloat(first.Complexity)
	return timeRatio / complexityRatio
}

func toFloat(x *big.Int) float64 {
	f, _ := strconv.ParseFloat(x.String(), 64)
	return f
}
