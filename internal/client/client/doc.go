// Package client talks to the spellcheckd gRPC endpoint.
//
// GRPCClient keeps the session token returned by Login in memory and
// attaches it to every call through a unary interceptor. gRPC status codes
// are translated back into the sentinel errors of package common, so
// callers match them with errors.Is exactly as the server does.
package client
