// Package config loads runtime configuration for the spellcheckd CLI client.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults, see (*Config).LoadDefaults.
//  2. An optional JSON or YAML file given with -c or -config.
//  3. Command-line flags -a (endpoint) and -t (timeout, seconds).
//
// File example:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s"
//	}
package config
