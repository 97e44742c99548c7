package protocol

import (
	"context"
	"errors"
	"net"
	"time"

	big "github.com/ncw/gmp"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
	"github.com/thechriswalker/go-dlog/store"
)

// DefaultMaxOrderBits bounds a single baby step table at about 2^24 entries.
const DefaultMaxOrderBits = 48

// Server is the grpc implementation of the solver. Each request builds its
// own tables so requests are independent of each other.
type Server struct {
	// cache may be nil, in which case every request is solved afresh
	cache *store.SQLiteStorage
	// largest BSGS search bound accepted, in bits
	maxOrderBits int
}

func NewServer(cache *store.SQLiteStorage, maxOrderBits int) *Server {
	return &Server{cache: cache, maxOrderBits: maxOrderBits}
}

// checkSearch refuses searches whose baby step table would be too large.
func (s *Server) checkSearch(name string, bound *big.Int) error {
	if bound.BitLen() > s.maxOrderBits {
		return status.Errorf(codes.InvalidArgument, "%s has %d bits, this server accepts at most %d", name, bound.BitLen(), s.maxOrderBits)
	}
	return nil
}

func (s *Server) logPeer(ctx context.Context, method string) {
	if client, ok := peer.FromContext(ctx); ok {
		log.Debug().Str("peer", client.Addr.String()).Str("method", method).Msg("Request")
	}
}

// toStatus turns solver errors into grpc errors. Anything unexpected is
// logged and hidden from the client.
func toStatus(err error) error {
	var ipe *dlog.InvalidPreconditionError
	var nie *dlog.NoInverseError
	switch {
	case errors.As(err, &ipe):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, dlog.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.As(err, &nie):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	log.Err(err).Msg("Error solving request")
	return status.Error(codes.Internal, "Something bad happened")
}

// DiscreteLog solves a Pohlig-Hellman problem
func (s *Server) DiscreteLog(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.logPeer(ctx, "DiscreteLog")
	pr, err := problemFromStruct(in)
	if err != nil {
		return nil, err
	}
	// each level searches the subgroup of order q
	if err := s.checkSearch("q", pr.Q); err != nil {
		return nil, err
	}
	e, err := s.cache.Solve(ctx, pr)
	if err != nil {
		return nil, toStatus(err)
	}
	log.Info().
		Str("problem", pr.String()).
		Str("log", e.Solution.Log.String()).
		Dur("elapsed", e.Elapsed).
		Msg("Solved")
	return solutionToStruct(e.Solution, e.Elapsed.Nanoseconds()), nil
}

// BabyStepGiantStep runs a single BSGS search. "order" is optional.
func (s *Server) BabyStepGiantStep(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	s.logPeer(ctx, "BabyStepGiantStep")
	modulus, err := bigIntField(in, "modulus")
	if err != nil {
		return nil, err
	}
	alpha, err := bigIntField(in, "alpha")
	if err != nil {
		return nil, err
	}
	beta, err := bigIntField(in, "beta")
	if err != nil {
		return nil, err
	}
	order := modulus
	name := "modulus"
	if _, ok := in.GetFields()["order"]; ok {
		if order, err = bigIntField(in, "order"); err != nil {
			return nil, err
		}
		name = "order"
	}
	if err := s.checkSearch(name, order); err != nil {
		return nil, err
	}
	start := time.Now()
	x, err := dlog.BabyStepGiantStepWithOrder(modulus, order, alpha, beta)
	if err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"log":        bigIntValue(x),
		"elapsed_ns": numberValue(float64(time.Since(start).Nanoseconds())),
	}}, nil
}

// Serve runs the grpc server on the listener until the context is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	gs := grpc.NewServer()
	RegisterSolverServer(gs, s)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			gs.GracefulStop()
		case <-done:
		}
	}()
	log.Info().Str("addr", lis.Addr().String()).Msg("Solver listening")
	return gs.Serve(lis)
}

var _ SolverServer = (*Server)(nil)
