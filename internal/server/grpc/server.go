package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/rpc"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, currentToken, userName, password, secondFactor string) (*models.User, error)
	Login(ctx context.Context, currentToken, userName, password, secondFactor string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

type querySvc interface {
	Submit(ctx context.Context, token, text string) (*models.QueryRecord, error)
	History(ctx context.Context, token, target string) (string, []models.QueryRecord, error)
	Query(ctx context.Context, token string, id int64) (*models.QueryRecord, error)
}

type auditSvc interface {
	LoginHistory(ctx context.Context, token, target string) (string, []models.LoginRecord, error)
}

type GRPCServer struct {
	address string
	users   userSvc
	queries querySvc
	audit   auditSvc
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, qs querySvc, as auditSvc) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		queries: qs,
		audit:   as,
	}
}

// newServer builds the gRPC server with the JSON codec, the token
// interceptor and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
	)
	rpc.RegisterSpellServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
