// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Global flags come before the subcommand:
//
//	gophauth-client -a 127.0.0.1:50051 -timeout 5 login -token <t>
//
// Supported flags
//
//	-a string      address:port of the gRPC endpoint
//	-timeout int   per-request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
package config
