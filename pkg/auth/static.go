package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// Static returns the same token on every call. Intended for tests and for
// environments where a token is issued out of band.
type Static struct {
	token *oauth2.Token
}

func NewStatic(accessToken string) *Static {
	return &Static{
		token: &oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		},
	}
}

func (s *Static) Token(_ context.Context) (*oauth2.Token, error) {
	return s.token, nil
}
