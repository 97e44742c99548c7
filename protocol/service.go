package protocol

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service has no .proto of its own; requests and responses are
// google.protobuf.Struct so the well known types serve as the schema.
const (
	serviceName             = "dlog.v1.Solver"
	methodDiscreteLog       = "/" + serviceName + "/DiscreteLog"
	methodBabyStepGiantStep = "/" + serviceName + "/BabyStepGiantStep"
)

// SolverServer is the server API for the dlog.v1.Solver service
type SolverServer interface {
	DiscreteLog(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BabyStepGiantStep(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSolverServer attaches the solver to a grpc server
func RegisterSolverServer(s *grpc.Server, srv SolverServer) {
	s.RegisterService(&solverServiceDesc, srv)
}

func unaryHandler(method string, call func(SolverServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SolverServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SolverServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var solverServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SolverServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "DiscreteLog",
			Handler: unaryHandler(methodDiscreteLog, func(s SolverServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.DiscreteLog(ctx, in)
			}),
		},
		{
			MethodName: "BabyStepGiantStep",
			Handler: unaryHandler(methodBabyStepGiantStep, func(s SolverServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return s.BabyStepGiantStep(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dlog/v1/solver",
}
