package client

import "context"

// Client is the HTTP collaborator of the store. Paths are relative to the API
// base URL and may carry a query string. A nil out skips body decoding.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}
