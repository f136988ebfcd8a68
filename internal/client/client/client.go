package client

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/rpc"
)

type Client interface {
	Close() error
	LoggedIn() bool
	Register(ctx context.Context, username, password, secondFactor string) error
	Login(ctx context.Context, username, password, secondFactor string) error
	Logout(ctx context.Context) error
	Check(ctx context.Context, text string) (*rpc.CheckResponse, error)
	History(ctx context.Context, target string) (*rpc.HistoryResponse, error)
	Query(ctx context.Context, id int64) (*rpc.Query, error)
	LoginHistory(ctx context.Context, target string) (*rpc.LoginHistoryResponse, error)
}
