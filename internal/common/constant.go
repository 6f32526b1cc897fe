// Package common contains shared constants and sentinel errors used across
// gophauth components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key that
// carries the bearer token on login requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix is stripped from the authorization value before the token
// reaches the login flow.
const BearerPrefix = "Bearer "
