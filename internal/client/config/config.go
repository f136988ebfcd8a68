package config

import "time"

// Config holds runtime settings for the spellcheckd CLI client.
type Config struct {
	// ServerEndpointAddr is the host:port of the gRPC endpoint.
	ServerEndpointAddr string
	// RequestTimeout bounds every single RPC.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults matching a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then the optional config file, then flags.
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
