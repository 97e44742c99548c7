package crypto

import (
	"encoding/json"
	"testing"

	big "github.com/ncw/gmp"
)

func TestBigIntSlice(t *testing.T) {
	huge, _ := new(big.Int).SetString("4516285972627451628597262745162859726274516285972627", 10)
	in := BigIntSlice{big.NewInt(0), big.NewInt(72), huge}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `["0","72","4516285972627451628597262745162859726274516285972627"]` {
		t.Fatalf("unexpected encoding: %s", b)
	}
	var out BigIntSlice
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("length mismatch %d != %d", len(out), len(in))
	}
	for i := range in {
		if in[i].Cmp(out[i]) != 0 {
			t.Errorf("index %d: %s != %s", i, in[i], out[i])
		}
	}
}

func TestBigIntSliceRejectsGarbage(t *testing.T) {
	var out BigIntSlice
	if err := json.Unmarshal([]byte(`["12","0x1f"]`), &out); err == nil {
		t.Fatal("expected an error for a non-decimal entry")
	}
	if _, err := BigIntFromJSON(""); err == nil {
		t.Fatal("expected an error for an empty string")
	}
}
