package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// Provider issues oauth tokens for outgoing google API requests.
// Implementations own any caching or refresh policy: the request pipeline
// asks for a token on every call and never stores one.
type Provider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}
