// Package common contains shared constants and sentinel errors used across
// the catalog client and server.
package common

// AuthorizationHeader carries the bearer token on catalog API requests.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
