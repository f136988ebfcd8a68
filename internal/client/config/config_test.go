package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_NoArgs(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "addr and timeout", args: []string{"-a", "127.0.0.1:9090", "-t", "3"},
			expected: &Config{ServerEndpointAddr: "127.0.0.1:9090", RequestTimeout: 3 * time.Second}},
		{name: "foreign flags ignored", args: []string{"-x", "1", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1", RequestTimeout: time.Minute}},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			config := &Config{RequestTimeout: time.Minute}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("server_endpoint_addr: files:1\nrequest_timeout: 2s\n"), 0o600))

	withArgs(t, "-c", yml)
	cfg := LoadConfig()
	assert.Equal(t, "files:1", cfg.ServerEndpointAddr)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)

	js := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"server_endpoint_addr":"filej:1","request_timeout":"4s"}`), 0o600))

	withArgs(t, "-config", js, "-a", "flag:1")
	cfg = LoadConfig()
	assert.Equal(t, "flag:1", cfg.ServerEndpointAddr)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
}

func TestParseFile_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	withArgs(t, "-c", bad)
	assert.Panics(t, func() { parseFile(&Config{}) })

	withArgs(t, "-c", filepath.Join(dir, "missing.json"))
	assert.Panics(t, func() { parseFile(&Config{}) })
}
