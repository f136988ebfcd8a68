package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/config"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/spellcheckd/internal/server/spellcheck"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeClock starts at the real current time so that the JWT expiry check,
// which uses the wall clock, agrees with the session table until Advance.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Now()} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeChecker struct {
	out []string
	err error
}

func (f *fakeChecker) Check(context.Context, string) ([]string, error) {
	return f.out, f.err
}

type fixture struct {
	rm      *repomanager.MemoryRepositoryManager
	clock   *fakeClock
	users   *UserService
	queries *QueryService
	audit   *AuditService
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: 10 * time.Minute,
		BcryptCost:              bcrypt.MinCost,
		AdminPassword:           "Administrator@1",
		AdminSecondFactor:       "12345678901",
	}
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithChecker(t, spellcheck.NewWordlistChecker([]string{"my", "is", "a", "the", "cat"}))
}

func newFixtureWithChecker(t *testing.T, c spellcheck.Checker) *fixture {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	clock := newFakeClock()

	us, err := NewUserService(rm, testConfig(), nil, logging.Nop{})
	require.NoError(t, err)
	us.now = clock.Now
	us.credentials.now = clock.Now
	require.NoError(t, us.SeedAdmin(context.Background()))

	qs := NewQueryService(us, rm.Queries(), c, nil, logging.Nop{})
	qs.now = clock.Now

	return &fixture{
		rm:      rm,
		clock:   clock,
		users:   us,
		queries: qs,
		audit:   NewAuditService(us, rm.Logins(), logging.Nop{}),
	}
}

// registerAndLogin creates a standard user and returns a live token.
func (f *fixture) registerAndLogin(t *testing.T, userName string) string {
	t.Helper()
	ctx := context.Background()
	_, err := f.users.Register(ctx, "", userName, "pw-"+userName, "2fa-"+userName)
	require.NoError(t, err)
	return f.login(t, userName)
}

func (f *fixture) login(t *testing.T, userName string) string {
	t.Helper()
	res, err := f.users.Login(context.Background(), "", userName, "pw-"+userName, "2fa-"+userName)
	require.NoError(t, err)
	return res.Token
}

func (f *fixture) adminToken(t *testing.T) string {
	t.Helper()
	res, err := f.users.Login(context.Background(), "", "admin", "Administrator@1", "12345678901")
	require.NoError(t, err)
	return res.Token
}
