package bench

import (
	"fmt"
	"time"

	big "github.com/ncw/gmp"
	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// Summary of a batch of random problems
type Summary struct {
	Count    int
	Failures int
	Total    time.Duration
	Mean     time.Duration
}

// Batch generates count random problems with the given shape, solves each
// and checks the answer against the known logarithm.
func Batch(q *big.Int, n, bits, count int, bar *MaybeProgress) (*Summary, error) {
	s := &Summary{Count: count}
	for i := 0; i < count; i++ {
		pr, secret, err := dlog.RandomProblem(q, n, bits)
		if err != nil {
			return nil, fmt.Errorf("Failed to generate problem: %w", err)
		}
		start := time.Now()
		sol, err := pr.Solve()
		s.Total += time.Since(start)
		bar.Increment()
		if err != nil {
			log.Warn().Err(err).Str("problem", pr.String()).Msg("Failed to solve")
			s.Failures++
			continue
		}
		if sol.Log.Cmp(secret) != 0 || !sol.Verify() {
			log.Warn().
				Str("problem", pr.String()).
				Str("want", secret.String()).
				Str("got", sol.Log.String()).
				Msg("Wrong answer")
			s.Failures++
		}
	}
	if count > 0 {
		s.Mean = s.Total / time.Duration(count)
	}
	return s, nil
}
