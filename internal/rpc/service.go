package rpc

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "spellcheckd.v1.SpellService"

// TokenMetadataKey is the metadata key that carries the session token.
const TokenMetadataKey = common.AccessTokenHeaderName

// FullMethod returns the gRPC method path for name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

type SpellServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Check(context.Context, *CheckRequest) (*CheckResponse, error)
	History(context.Context, *HistoryRequest) (*HistoryResponse, error)
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	LoginHistory(context.Context, *LoginHistoryRequest) (*LoginHistoryResponse, error)
}

func unary[Req, Resp any](name string, call func(SpellServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(SpellServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SpellServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", SpellServiceServer.Register),
		unary("Login", SpellServiceServer.Login),
		unary("Logout", SpellServiceServer.Logout),
		unary("Check", SpellServiceServer.Check),
		unary("History", SpellServiceServer.History),
		unary("Query", SpellServiceServer.Query),
		unary("LoginHistory", SpellServiceServer.LoginHistory),
	},
	Metadata: "spellcheckd/v1/spell",
}

func RegisterSpellServiceServer(s grpc.ServiceRegistrar, srv SpellServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// SpellServiceClient is the client stub. The connection must use Codec,
// see DialOptions.
type SpellServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSpellServiceClient(cc grpc.ClientConnInterface) *SpellServiceClient {
	return &SpellServiceClient{cc: cc}
}

// DialOptions forces the JSON codec on every call.
func DialOptions() []grpc.DialOption {
	return []grpc.DialOption{grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{}))}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SpellServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, "Register", in, opts)
}

func (c *SpellServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *SpellServiceClient) Logout(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "Logout", in, opts)
}

func (c *SpellServiceClient) Check(ctx context.Context, in *CheckRequest, opts ...grpc.CallOption) (*CheckResponse, error) {
	return invoke[CheckResponse](ctx, c.cc, "Check", in, opts)
}

func (c *SpellServiceClient) History(ctx context.Context, in *HistoryRequest, opts ...grpc.CallOption) (*HistoryResponse, error) {
	return invoke[HistoryResponse](ctx, c.cc, "History", in, opts)
}

func (c *SpellServiceClient) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	return invoke[QueryResponse](ctx, c.cc, "Query", in, opts)
}

func (c *SpellServiceClient) LoginHistory(ctx context.Context, in *LoginHistoryRequest, opts ...grpc.CallOption) (*LoginHistoryResponse, error) {
	return invoke[LoginHistoryResponse](ctx, c.cc, "LoginHistory", in, opts)
}
