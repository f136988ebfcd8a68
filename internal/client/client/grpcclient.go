package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
)

// GRPCClient is safe for concurrent use.
type GRPCClient struct {
	conn    *grpc.ClientConn
	client  *rpc.SpellServiceClient
	timeout time.Duration

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(rpc.TokenMetadataKey, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withAccessToken(ctx, s.token())
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpoint. Extra dial options are appended
// after the defaults, which tests use to swap in a bufconn dialer.
func NewGRPCClient(endpoint string, timeout time.Duration, extra ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{timeout: timeout}

	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, rpc.DialOptions()...)
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewSpellServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) setToken(t string) {
	s.mu.Lock()
	s.accessToken = t
	s.mu.Unlock()
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Register(ctx context.Context, username, password, secondFactor string) error {
	req := &rpc.RegisterRequest{UserName: username, Password: password, SecondFactor: secondFactor}
	_, err := s.client.Register(ctx, req)
	return mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, username, password, secondFactor string) error {
	req := &rpc.LoginRequest{UserName: username, Password: password, SecondFactor: secondFactor}
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return mapError(err)
	}
	s.setToken(resp.Token)
	return nil
}

// Logout forgets the local token even if the server call fails; the server
// side session then simply expires.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, err := s.client.Logout(ctx, &emptypb.Empty{})
	s.setToken("")
	return mapError(err)
}

func (s *GRPCClient) Check(ctx context.Context, text string) (*rpc.CheckResponse, error) {
	resp, err := s.client.Check(ctx, &rpc.CheckRequest{Text: text})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) History(ctx context.Context, target string) (*rpc.HistoryResponse, error) {
	resp, err := s.client.History(ctx, &rpc.HistoryRequest{Target: target})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Query(ctx context.Context, id int64) (*rpc.Query, error) {
	resp, err := s.client.Query(ctx, &rpc.QueryRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Query, nil
}

func (s *GRPCClient) LoginHistory(ctx context.Context, target string) (*rpc.LoginHistoryResponse, error) {
	resp, err := s.client.LoginHistory(ctx, &rpc.LoginHistoryRequest{Target: target})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}
