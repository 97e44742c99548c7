package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

func openTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func handbook() *dlog.Problem {
	return &dlog.Problem{P: big.NewInt(251), Base: big.NewInt(21), Arg: big.NewInt(175), Q: big.NewInt(5), N: 3}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStorage(t)
	pr := handbook()

	if _, err := s.Get(ctx, pr); !errors.Is(err, ErrSolutionMissing) {
		t.Fatalf("expected ErrSolutionMissing, got %v", err)
	}

	sol, err := pr.Solve()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, sol, 42*time.Microsecond); err != nil {
		t.Fatal(err)
	}
	e, err := s.Get(ctx, pr)
	if err != nil {
		t.Fatal(err)
	}
	if e.Solution.Log.Int64() != 72 {
		t.Errorf("cached log = %s, want 72", e.Solution.Log)
	}
	if len(e.Solution.Digits) != 3 || e.Solution.Digits[1].Int64() != 4 {
		t.Errorf("cached digits wrong: %v", e.Solution.Digits)
	}
	if e.Elapsed != 42*time.Microsecond {
		t.Errorf("cached elapsed = %s", e.Elapsed)
	}
	if e.Solution.Problem.ID() != pr.ID() {
		t.Error("cached problem differs from the original")
	}
	// overwrite is fine
	if err := s.Put(ctx, sol, time.Millisecond); err != nil {
		t.Fatal(err)
	}
}

func TestCachedSolve(t *testing.T) {
	ctx := context.Background()
	s := openTestStorage(t)
	pr := handbook()
	first, err := s.Solve(ctx, pr)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Solve(ctx, pr)
	if err != nil {
		t.Fatal(err)
	}
	if first.Solution.Log.Cmp(second.Solution.Log) != 0 {
		t.Fatal("cache returned a different answer")
	}
	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one cached entry, got %d", len(entries))
	}

	// invalid problems are not cached
	bad := handbook()
	bad.N = 1
	if _, err := s.Solve(ctx, bad); err == nil {
		t.Fatal("expected invalid problem to fail")
	}
	entries, _ = s.List(ctx, 10)
	if len(entries) != 1 {
		t.Fatalf("invalid problem was cached")
	}
}

func TestNilStorageSolves(t *testing.T) {
	var s *SQLiteStorage
	e, err := s.Solve(context.Background(), handbook())
	if err != nil {
		t.Fatal(err)
	}
	if e.Solution.Log.Int64() != 72 {
		t.Fatalf("got %s", e.Solution.Log)
	}
}
