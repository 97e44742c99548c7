package crypto

import (
	"encoding/json"
	"fmt"

	big "github.com/ncw/gmp"
)

// BigIntToJSON encodes as a decimal string. JSON numbers lose precision in
// most parsers long before our integers get big, so we never use them.
func BigIntToJSON(x *big.Int) string {
	return x.String()
}

func BigIntFromJSON(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("Expecting decimal integer string, got: %q", s)
	}
	return x, nil
}

// slice of *big.Int s
type BigIntSlice []*big.Int

func (s BigIntSlice) MarshalJSON() ([]byte, error) {
	strs := make([]string, len(s))
	for i, n := range s {
		strs[i] = BigIntToJSON(n)
	}
	return json.Marshal(strs)
}

func (s *BigIntSlice) UnmarshalJSON(b []byte) error {
	var strs []string
	if err := json.Unmarshal(b, &strs); err != nil {
		return err
	}
	bs := make(BigIntSlice, len(strs))
	for i := range strs {
		n, err := BigIntFromJSON(strs[i])
		if err != nil {
			return fmt.Errorf("Invalid integer at index %d: %w", i, err)
		}
		bs[i] = n
	}
	*s = bs
	return nil
}
