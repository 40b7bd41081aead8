package client

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token for each request. An empty token
// means the request is sent without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, typically read from config or the terminal.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// JWTTokenSource wraps another source and rejects tokens whose exp claim has
// passed. The signature is not verified; that is the server's job. Opaque
// (non-JWT) tokens are passed through unchanged.
type JWTTokenSource struct {
	Source TokenSource
	Now    func() time.Time
	Leeway time.Duration
}

func (s JWTTokenSource) Token(ctx context.Context) (string, error) {
	tok, err := s.Source.Token(ctx)
	if err != nil || tok == "" {
		return tok, err
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return tok, nil
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if claims.ExpiresAt != nil && now().After(claims.ExpiresAt.Add(s.Leeway)) {
		return "", ErrTokenExpired
	}
	return tok, nil
}
