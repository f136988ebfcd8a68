package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/rpc"
	"github.com/dmitrijs2005/spellcheckd/internal/server/config"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/spellcheckd/internal/server/services"
	"github.com/dmitrijs2005/spellcheckd/internal/server/spellcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, &fakeUser{}, &fakeQueries{}, &fakeAudit{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeUser{}, &fakeQueries{}, &fakeAudit{})
	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves real services over an in-memory listener.
func startBufconn(t *testing.T) *rpc.SpellServiceClient {
	t.Helper()

	cfg := &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: 10 * time.Minute,
		BcryptCost:              bcrypt.MinCost,
		AdminPassword:           "Administrator@1",
		AdminSecondFactor:       "12345678901",
	}
	rm := repomanager.NewMemoryRepositoryManager()
	us, err := services.NewUserService(rm, cfg, nil, logging.Nop{})
	require.NoError(t, err)
	require.NoError(t, us.SeedAdmin(context.Background()))
	qs := services.NewQueryService(us, rm.Queries(), spellcheck.NewWordlistChecker([]string{"my", "is"}), nil, logging.Nop{})
	as := services.NewAuditService(us, rm.Logins(), logging.Nop{})

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewGRPCServer("bufnet", logging.Nop{}, us, qs, as)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()

	opts := append(rpc.DialOptions(),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		<-done
	})
	return rpc.NewSpellServiceClient(conn)
}

func authed(tok string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), rpc.TokenMetadataKey, tok)
}

func TestBufconn_FullFlow(t *testing.T) {
	c := startBufconn(t)
	ctx := context.Background()

	_, err := c.Register(ctx, &rpc.RegisterRequest{UserName: "jonathan", Password: "password", SecondFactor: "6316827788"})
	require.NoError(t, err)

	_, err = c.Register(ctx, &rpc.RegisterRequest{UserName: "admin", Password: "x", SecondFactor: "y"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = c.Login(ctx, &rpc.LoginRequest{UserName: "jonathan", Password: "password", SecondFactor: "wrong"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	login, err := c.Login(ctx, &rpc.LoginRequest{UserName: "jonathan", Password: "password", SecondFactor: "6316827788"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	_, err = c.Login(authed(login.Token), &rpc.LoginRequest{UserName: "jonathan", Password: "password", SecondFactor: "6316827788"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = c.Check(ctx, &rpc.CheckRequest{Text: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	check, err := c.Check(authed(login.Token), &rpc.CheckRequest{Text: "my dawg is kewl."})
	require.NoError(t, err)
	assert.Equal(t, int64(1), check.ID)
	assert.Equal(t, []string{"dawg", "kewl"}, check.Misspelled)

	hist, err := c.History(authed(login.Token), &rpc.HistoryRequest{Target: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "jonathan", hist.UserName)
	require.Len(t, hist.Queries, 1)

	_, err = c.LoginHistory(authed(login.Token), &rpc.LoginHistoryRequest{Target: "jonathan"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	admin, err := c.Login(ctx, &rpc.LoginRequest{UserName: "admin", Password: "Administrator@1", SecondFactor: "12345678901"})
	require.NoError(t, err)

	q, err := c.Query(authed(admin.Token), &rpc.QueryRequest{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "jonathan", q.Query.UserName)

	_, err = c.Logout(authed(login.Token), &emptypb.Empty{})
	require.NoError(t, err)
	_, err = c.Logout(authed(login.Token), &emptypb.Empty{})
	require.NoError(t, err)

	logins, err := c.LoginHistory(authed(admin.Token), &rpc.LoginHistoryRequest{Target: "jonathan"})
	require.NoError(t, err)
	require.Len(t, logins.Records, 1)
	assert.NotNil(t, logins.Records[0].LogoutTime)

	_, err = c.History(authed(login.Token), &rpc.HistoryRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
