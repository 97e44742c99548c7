package protocol

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	big "github.com/ncw/gmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
	"github.com/thechriswalker/go-dlog/store"
)

func startServer(t *testing.T, cache *store.SQLiteStorage) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := NewServer(cache, DefaultMaxOrderBits).Serve(ctx, lis); err != nil {
			t.Logf("server stopped: %s", err)
		}
	}()

	dialer := func(context.Context, string) (net.Conn, error) {
		return lis.Dial()
	}
	c, err := Dial(context.Background(), "bufnet", grpc.WithContextDialer(dialer))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		c.Close()
		cancel()
		<-done
	})
	return c
}

func handbook() *dlog.Problem {
	return &dlog.Problem{P: big.NewInt(251), Base: big.NewInt(21), Arg: big.NewInt(175), Q: big.NewInt(5), N: 3}
}

func TestRemoteDiscreteLog(t *testing.T) {
	c := startServer(t, nil)
	sol, err := c.DiscreteLog(context.Background(), handbook())
	if err != nil {
		t.Fatal(err)
	}
	if sol.Log.Int64() != 72 {
		t.Fatalf("remote log = %s, want 72", sol.Log)
	}
	if len(sol.Digits) != 3 || !sol.Verify() {
		t.Fatalf("remote solution is incomplete: %v", sol.Digits)
	}
}

func TestRemoteDiscreteLogCached(t *testing.T) {
	cache, err := store.NewSQLiteStorage(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	c := startServer(t, cache)
	for i := 0; i < 2; i++ {
		sol, err := c.DiscreteLog(context.Background(), handbook())
		if err != nil {
			t.Fatal(err)
		}
		if sol.Log.Int64() != 72 {
			t.Fatalf("round %d: remote log = %s", i, sol.Log)
		}
	}
	entries, err := cache.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one cached solution, got %d", len(entries))
	}
}

func TestRemoteErrors(t *testing.T) {
	c := startServer(t, nil)
	ctx := context.Background()

	bad := handbook()
	bad.N = 1
	_, err := c.DiscreteLog(ctx, bad)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}

	_, err = c.BabyStepGiantStep(ctx, big.NewInt(7), nil, big.NewInt(2), big.NewInt(3))
	if status.Code(err) != codes.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}

	_, err = c.BabyStepGiantStep(ctx, big.NewInt(6), nil, big.NewInt(2), big.NewInt(4))
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("expected FailedPrecondition, got %v", err)
	}

	// a request missing fields never reaches the solver
	out := new(structpb.Struct)
	err = c.cc.Invoke(ctx, methodDiscreteLog, &structpb.Struct{}, out)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for an empty request, got %v", err)
	}
}

func TestRemoteBabyStepGiantStep(t *testing.T) {
	c := startServer(t, nil)
	ctx := context.Background()
	x, err := c.BabyStepGiantStep(ctx, big.NewInt(181), nil, big.NewInt(62), big.NewInt(65))
	if err != nil {
		t.Fatal(err)
	}
	if x.Int64() != 5 {
		t.Fatalf("got %s, want 5", x)
	}
	x, err = c.BabyStepGiantStep(ctx, big.NewInt(181), big.NewInt(9), big.NewInt(62), big.NewInt(65))
	if err != nil {
		t.Fatal(err)
	}
	if x.Int64() != 5 {
		t.Fatalf("with order: got %s, want 5", x)
	}
}

func TestRemoteSearchTooLarge(t *testing.T) {
	c := startServer(t, nil)
	ctx := context.Background()
	huge := new(big.Int).Lsh(big.NewInt(1), 200)
	huge.Add(huge, big.NewInt(1))

	_, err := c.BabyStepGiantStep(ctx, huge, nil, big.NewInt(3), big.NewInt(5))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for a 201 bit modulus, got %v", err)
	}
	_, err = c.BabyStepGiantStep(ctx, big.NewInt(181), huge, big.NewInt(62), big.NewInt(65))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for a 201 bit order, got %v", err)
	}
	// a small order keeps a large modulus acceptable
	_, err = c.BabyStepGiantStep(ctx, huge, big.NewInt(1000), big.NewInt(1), big.NewInt(1))
	if err != nil {
		t.Errorf("small order with a large modulus was refused: %v", err)
	}

	// q is checked before the problem is validated or solved
	q := new(big.Int).Lsh(big.NewInt(1), DefaultMaxOrderBits+1)
	_, err = c.DiscreteLog(ctx, &dlog.Problem{P: huge, Base: big.NewInt(2), Arg: big.NewInt(2), Q: q, N: 2})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for a wide q, got %v", err)
	}
}

func TestServeReturnsWhenListenerFails(t *testing.T) {
	lis := bufconn.Listen(1 << 10)
	lis.Close()
	errc := make(chan error, 1)
	go func() {
		errc <- NewServer(nil, DefaultMaxOrderBits).Serve(context.Background(), lis)
	}()
	select {
	case err := <-errc:
		if err == nil {
			t.Fatal("expected an error from a closed listener")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after its listener closed")
	}
}

func TestProblemStruct(t *testing.T) {
	pr := handbook()
	back, err := problemFromStruct(problemToStruct(pr))
	if err != nil {
		t.Fatal(err)
	}
	if back.ID() != pr.ID() {
		t.Fatal("problem changed in transit")
	}
	s := problemToStruct(pr)
	s.Fields["n"] = numberValue(2.5)
	if _, err := problemFromStruct(s); status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected a fractional n to be rejected, got %v", err)
	}
	s.Fields["n"] = stringValue("3")
	if _, err := problemFromStruct(s); status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected a string n to be rejected, got %v", err)
	}
}
