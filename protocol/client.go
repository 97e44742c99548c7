package protocol

import (
	"context"

	big "github.com/ncw/gmp"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// Client talks to a remote solver
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a solver. There is no transport security: the service
// only ever sees public parameters.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithInsecure()}, opts...)
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// DiscreteLog asks the server to solve the problem
func (c *Client) DiscreteLog(ctx context.Context, pr *dlog.Problem) (*dlog.Solution, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodDiscreteLog, problemToStruct(pr), out); err != nil {
		return nil, err
	}
	return solutionFromStruct(pr, out)
}

// BabyStepGiantStep asks the server for a single BSGS search. A nil order
// searches up to the modulus.
func (c *Client) BabyStepGiantStep(ctx context.Context, modulus, order, alpha, beta *big.Int) (*big.Int, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"modulus": bigIntValue(modulus),
		"alpha":   bigIntValue(alpha),
		"beta":    bigIntValue(beta),
	}}
	if order != nil {
		in.Fields["order"] = bigIntValue(order)
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodBabyStepGiantStep, in, out); err != nil {
		return nil, err
	}
	return bigIntField(out, "log")
}
