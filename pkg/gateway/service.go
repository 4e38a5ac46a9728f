package gateway

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName        = "guardian.gateway.v1.Gateway"
	ReportFallMethod   = "/" + ServiceName + "/ReportFall"
	ReportStatusMethod = "/" + ServiceName + "/ReportStatus"
)

// GatewayHandler is the server side of guardian.gateway.v1.Gateway. Both
// calls exchange google.protobuf.Struct messages.
type GatewayHandler interface {
	ReportFall(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ReportStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func RegisterGatewayServer(s grpc.ServiceRegistrar, srv GatewayHandler) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GatewayHandler)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ReportFall", Handler: reportFallHandler},
		{MethodName: "ReportStatus", Handler: reportStatusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "guardian/gateway/v1/gateway.proto",
}

func reportFallHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayHandler).ReportFall(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReportFallMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayHandler).ReportFall(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func reportStatusHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayHandler).ReportStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReportStatusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GatewayHandler).ReportStatus(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
