// Package client is the gRPC client for gophauth.AccountService used by the
// command-line tool.
package client
