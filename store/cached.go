package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// Solve returns the cached solution if there is one, otherwise solves and
// stores the result. A nil storage just solves.
func (s *SQLiteStorage) Solve(ctx context.Context, pr *dlog.Problem) (*Entry, error) {
	if s != nil {
		e, err := s.Get(ctx, pr)
		switch {
		case err == nil:
			log.Debug().Str("problem", pr.String()).Msg("Solution found in cache")
			return e, nil
		case !errors.Is(err, ErrSolutionMissing):
			return nil, err
		}
	}
	start := time.Now()
	sol, err := pr.Solve()
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	if s != nil {
		if err := s.Put(ctx, sol, elapsed); err != nil {
			// the answer is still good, the cache just missed out
			log.Warn().Err(err).Msg("Failed to cache solution")
		}
	}
	return &Entry{Solution: sol, Elapsed: elapsed, SolvedAt: time.Now()}, nil
}
