package server

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	wl := filepath.Join(t.TempDir(), "wordlist.txt")
	require.NoError(t, os.WriteFile(wl, []byte("my\nis\n"), 0o600))

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.EndpointAddrGRPC = "127.0.0.1:0"
	cfg.BcryptCost = bcrypt.MinCost
	cfg.CheckerPath = ""
	cfg.WordlistPath = wl
	return cfg
}

func TestNewApp_SeedsAdmin(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, testConfig(t), &bytes.Buffer{})
	require.NoError(t, err)
	defer app.repomanager.Close()

	res, err := app.userService.Login(ctx, "", "admin", "Administrator@1", "12345678901")
	require.NoError(t, err)

	rec, err := app.queryService.Submit(ctx, res.Token, "my dawg is kewl.")
	require.NoError(t, err)
	assert.Equal(t, []string{"dawg", "kewl"}, rec.Misspelled)
}

func TestNewApp_SQLiteKeepsAdminAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.StorageDriver = config.StorageSQLite
	cfg.DatabaseDSN = filepath.Join(t.TempDir(), "spell.db")

	app, err := NewApp(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, app.repomanager.Close())

	// a changed admin password does not overwrite the stored one
	cfg.AdminPassword = "Changed@2"
	app, err = NewApp(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	defer app.repomanager.Close()

	_, err = app.userService.Login(ctx, "", "admin", "Administrator@1", "12345678901")
	assert.NoError(t, err)
}

func TestNewApp_MissingWordlist(t *testing.T) {
	cfg := testConfig(t)
	cfg.WordlistPath = filepath.Join(t.TempDir(), "nope.txt")

	_, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewApp_UnknownStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "redis"

	_, err := NewApp(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(t), &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
