package protocol

import (
	"fmt"
	"math"

	big "github.com/ncw/gmp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/thechriswalker/go-dlog/crypto"
	"github.com/thechriswalker/go-dlog/crypto/dlog"
)

// integers travel as decimal strings, same as our JSON.

func bigIntField(s *structpb.Struct, key string) (*big.Int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "No field '%s' in request", key)
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "Invalid type at field '%s' (expecting string)", key)
	}
	x, err := crypto.BigIntFromJSON(str.StringValue)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "Invalid value at field '%s': %s", key, err)
	}
	return x, nil
}

func intField(s *structpb.Struct, key string) (int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "No field '%s' in request", key)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "Invalid type at field '%s' (expecting number)", key)
	}
	f := num.NumberValue
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "Non integer '%s' value in request", key)
	}
	return int(f), nil
}

func stringValue(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}

func bigIntValue(x *big.Int) *structpb.Value {
	return stringValue(crypto.BigIntToJSON(x))
}

func numberValue(f float64) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: f}}
}

func problemToStruct(pr *dlog.Problem) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"p":    bigIntValue(pr.P),
		"base": bigIntValue(pr.Base),
		"arg":  bigIntValue(pr.Arg),
		"q":    bigIntValue(pr.Q),
		"n":    numberValue(float64(pr.N)),
	}}
}

func problemFromStruct(s *structpb.Struct) (pr *dlog.Problem, err error) {
	pr = &dlog.Problem{}
	if pr.P, err = bigIntField(s, "p"); err != nil {
		return nil, err
	}
	if pr.Base, err = bigIntField(s, "base"); err != nil {
		return nil, err
	}
	if pr.Arg, err = bigIntField(s, "arg"); err != nil {
		return nil, err
	}
	if pr.Q, err = bigIntField(s, "q"); err != nil {
		return nil, err
	}
	if pr.N, err = intField(s, "n"); err != nil {
		return nil, err
	}
	return pr, nil
}

func solutionToStruct(sol *dlog.Solution, elapsedNs int64) *structpb.Struct {
	digits := make([]*structpb.Value, len(sol.Digits))
	for i, d := range sol.Digits {
		digits[i] = bigIntValue(d)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"log":        bigIntValue(sol.Log),
		"digits":     {Kind: &structpb.Value_ListValue{ListValue: &structpb.ListValue{Values: digits}}},
		"elapsed_ns": numberValue(float64(elapsedNs)),
	}}
}

func solutionFromStruct(pr *dlog.Problem, s *structpb.Struct) (*dlog.Solution, error) {
	log, err := bigIntField(s, "log")
	if err != nil {
		return nil, err
	}
	sol := &dlog.Solution{Problem: pr, Log: log}
	list, ok := s.GetFields()["digits"].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("No digits in response")
	}
	for i, v := range list.ListValue.GetValues() {
		d, err := crypto.BigIntFromJSON(v.GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("Invalid digit %d in response: %w", i, err)
		}
		sol.Digits = append(sol.Digits, d)
	}
	return sol, nil
}
