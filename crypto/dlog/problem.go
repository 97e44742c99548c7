package dlog

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	big "github.com/ncw/gmp"

	"github.com/thechriswalker/go-dlog/crypto"
	"github.com/thechriswalker/go-dlog/crypto/modular"
)

// Problem is base^x = arg (mod p) where base has order q^n
type Problem struct {
	P, Base, Arg, Q *big.Int
	N               int
}

// Order is q^n, the order of the base
func (pr *Problem) Order() *big.Int {
	return modular.Pow(pr.Q, pr.N)
}

func (pr *Problem) String() string {
	return fmt.Sprintf("%s^x = %s mod %s (ord=%s^%d)", pr.Base, pr.Arg, pr.P, pr.Q, pr.N)
}

// ID is a hash of the canonical JSON encoding, usable as a cache key.
func (pr *Problem) ID() [32]byte {
	b, err := pr.MarshalJSON()
	if err != nil {
		// only strings and an int in there.
		panic(err)
	}
	return sha256.Sum256(b)
}

// Solution is a solved problem with the base q digits of the logarithm,
// least significant first.
type Solution struct {
	Problem *Problem
	Log     *big.Int
	Digits  crypto.BigIntSlice
}

// Verify checks base^log = arg (mod p)
func (s *Solution) Verify() bool {
	return new(big.Int).Exp(s.Problem.Base, s.Log, s.Problem.P).Cmp(new(big.Int).Mod(s.Problem.Arg, s.Problem.P)) == 0
}

/////////////////// JSON ///////////////////
//
// big.Int would encode as a JSON number, which does not survive most
// parsers, so these are explicit.

type problemJSON struct {
	P    string `json:"p"`
	Base string `json:"base"`
	Arg  string `json:"arg"`
	Q    string `json:"q"`
	N    int    `json:"n"`
}

func (pr *Problem) toJSON() *problemJSON {
	return &problemJSON{
		P:    crypto.BigIntToJSON(pr.P),
		Base: crypto.BigIntToJSON(pr.Base),
		Arg:  crypto.BigIntToJSON(pr.Arg),
		Q:    crypto.BigIntToJSON(pr.Q),
		N:    pr.N,
	}
}

func (pr *Problem) fromJSON(m *problemJSON) (err error) {
	fields := []struct {
		key string
		src string
		dst **big.Int
	}{
		{"p", m.P, &pr.P},
		{"base", m.Base, &pr.Base},
		{"arg", m.Arg, &pr.Arg},
		{"q", m.Q, &pr.Q},
	}
	for _, f := range fields {
		if f.src == "" {
			return fmt.Errorf("No field '%s' in JSON object", f.key)
		}
		if *f.dst, err = crypto.BigIntFromJSON(f.src); err != nil {
			return fmt.Errorf("Invalid value at field '%s': %w", f.key, err)
		}
	}
	pr.N = m.N
	return nil
}

func (pr *Problem) MarshalJSON() ([]byte, error) {
	return json.Marshal(pr.toJSON())
}

// UnmarshalJSON only checks the encoding. Call Validate to check the maths.
func (pr *Problem) UnmarshalJSON(b []byte) error {
	m := &problemJSON{}
	if err := json.Unmarshal(b, m); err != nil {
		return err
	}
	return pr.fromJSON(m)
}

type solutionJSON struct {
	problemJSON
	Log    string             `json:"log"`
	Digits crypto.BigIntSlice `json:"digits"`
}

func (s *Solution) MarshalJSON() ([]byte, error) {
	return json.Marshal(&solutionJSON{
		problemJSON: *s.Problem.toJSON(),
		Log:         crypto.BigIntToJSON(s.Log),
		Digits:      s.Digits,
	})
}

func (s *Solution) UnmarshalJSON(b []byte) (err error) {
	m := &solutionJSON{}
	if err = json.Unmarshal(b, m); err != nil {
		return err
	}
	s.Problem = &Problem{}
	if err = s.Problem.fromJSON(&m.problemJSON); err != nil {
		return err
	}
	if m.Log == "" {
		return fmt.Errorf("No field 'log' in JSON object")
	}
	s.Log, err = crypto.BigIntFromJSON(m.Log)
	s.Digits = m.Digits
	return err
}
