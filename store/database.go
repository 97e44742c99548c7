// Package store caches solved problems in SQLite so repeated solves are free
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import go-sqlite3 library
	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto"
	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// ErrSolutionMissing is returned from Get for problems not in the cache
var ErrSolutionMissing = errors.New("Solution Not Found")

// Entry is a cached solution with when and how fast it was solved
type Entry struct {
	Solution *dlog.Solution
	Elapsed  time.Duration
	SolvedAt time.Time
}

// SQLiteStorage is backed by SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage does what is says on the tin
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// the id is the hash of the canonical problem JSON, so it is the
	// natural primary key. Integers are stored as decimal text.
	stmt, err := db.Prepare(`
		CREATE TABLE IF NOT EXISTS solutions (
			id BLOB NOT NULL PRIMARY KEY,
			p TEXT NOT NULL,
			base TEXT NOT NULL,
			arg TEXT NOT NULL,
			q TEXT NOT NULL,
			n INTEGER NOT NULL,
			log TEXT NOT NULL,
			digits TEXT NOT NULL,           -- JSON array of decimal strings
			elapsed_ns INTEGER NOT NULL,    -- time taken by the solve
			solved_at INTEGER NOT NULL      -- unix timestamp in seconds
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	defer stmt.Close()
	if _, err = stmt.Exec(); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Put stores a solution, replacing any previous one for the same problem.
func (s *SQLiteStorage) Put(ctx context.Context, sol *dlog.Solution, elapsed time.Duration) error {
	digits, err := sol.Digits.MarshalJSON()
	if err != nil {
		return err
	}
	stmt, err := s.db.PrepareContext(ctx, `
		INSERT OR REPLACE INTO solutions (id, p, base, arg, q, n, log, digits, elapsed_ns, solved_at)
		                          VALUES (?,  ?, ?,    ?,   ?, ?, ?,   ?,      ?,          ?);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	id := sol.Problem.ID()
	pr := sol.Problem
	_, err = stmt.ExecContext(ctx,
		id[:],
		crypto.BigIntToJSON(pr.P),
		crypto.BigIntToJSON(pr.Base),
		crypto.BigIntToJSON(pr.Arg),
		crypto.BigIntToJSON(pr.Q),
		pr.N,
		crypto.BigIntToJSON(sol.Log),
		string(digits),
		elapsed.Nanoseconds(),
		time.Now().Unix(),
	)
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var p, base, arg, q, logStr, digits string
	var n int
	var elapsed, solvedAt int64
	err := row.Scan(&p, &base, &arg, &q, &n, &logStr, &digits, &elapsed, &solvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSolutionMissing
	}
	if err != nil {
		return nil, err
	}
	pr := &dlog.Problem{N: n}
	ints := []struct {
		src string
		dst **big.Int
	}{
		{p, &pr.P}, {base, &pr.Base}, {arg, &pr.Arg}, {q, &pr.Q},
	}
	for _, f := range ints {
		if *f.dst, err = crypto.BigIntFromJSON(f.src); err != nil {
			return nil, err
		}
	}
	sol := &dlog.Solution{Problem: pr}
	if sol.Log, err = crypto.BigIntFromJSON(logStr); err != nil {
		return nil, err
	}
	if err = sol.Digits.UnmarshalJSON([]byte(digits)); err != nil {
		return nil, err
	}
	return &Entry{
		Solution: sol,
		Elapsed:  time.Duration(elapsed),
		SolvedAt: time.Unix(solvedAt, 0),
	}, nil
}

// Get fetches the cached solution for a problem
func (s *SQLiteStorage) Get(ctx context.Context, pr *dlog.Problem) (*Entry, error) {
	stmt, err := s.db.PrepareContext(ctx, `
		SELECT p, base, arg, q, n, log, digits, elapsed_ns, solved_at
		FROM solutions
		WHERE id = ?
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	id := pr.ID()
	return scanEntry(stmt.QueryRowContext(ctx, id[:]))
}

// List returns the most recent solutions first, at most limit of them.
func (s *SQLiteStorage) List(ctx context.Context, limit int) ([]*Entry, error) {
	stmt, err := s.db.PrepareContext(ctx, `
		SELECT p, base, arg, q, n, log, digits, elapsed_ns, solved_at
		FROM solutions
		ORDER BY solved_at DESC, id ASC
		LIMIT ?
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	rows, err := stmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
