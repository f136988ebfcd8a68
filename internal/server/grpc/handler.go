package grpc

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/rpc"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	user, err := s.users.Register(ctx, tokenFromContext(ctx), req.UserName, req.Password, req.SecondFactor)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.RegisterResponse{UserName: user.UserName}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	res, err := s.users.Login(ctx, tokenFromContext(ctx), req.UserName, req.Password, req.SecondFactor)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.LoginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.users.Logout(ctx, tokenFromContext(ctx)); err != nil {
		s.logger.Error(ctx, "logout error", "error", err)
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Check(ctx context.Context, req *rpc.CheckRequest) (*rpc.CheckResponse, error) {
	rec, err := s.queries.Submit(ctx, tokenFromContext(ctx), req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.CheckResponse{ID: rec.ID, Misspelled: rec.Misspelled}, nil
}

func (s *GRPCServer) History(ctx context.Context, req *rpc.HistoryRequest) (*rpc.HistoryResponse, error) {
	owner, list, err := s.queries.History(ctx, tokenFromContext(ctx), req.Target)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.HistoryResponse{UserName: owner, Queries: make([]rpc.Query, 0, len(list))}
	for i := range list {
		resp.Queries = append(resp.Queries, toQuery(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) Query(ctx context.Context, req *rpc.QueryRequest) (*rpc.QueryResponse, error) {
	rec, err := s.queries.Query(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.QueryResponse{Query: toQuery(rec)}, nil
}

func (s *GRPCServer) LoginHistory(ctx context.Context, req *rpc.LoginHistoryRequest) (*rpc.LoginHistoryResponse, error) {
	owner, list, err := s.audit.LoginHistory(ctx, tokenFromContext(ctx), req.Target)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.LoginHistoryResponse{UserName: owner, Records: make([]rpc.LoginRecord, 0, len(list))}
	for _, r := range list {
		resp.Records = append(resp.Records, rpc.LoginRecord{ID: r.ID, LoginTime: r.LoginTime, LogoutTime: r.LogoutTime})
	}
	return resp, nil
}

func toQuery(q *models.QueryRecord) rpc.Query {
	return rpc.Query{
		ID:         q.ID,
		UserName:   q.UserName,
		Text:       q.Text,
		Misspelled: q.Misspelled,
		CreatedAt:  q.CreatedAt,
	}
}
