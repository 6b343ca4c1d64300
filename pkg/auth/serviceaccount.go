package auth

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// To authorize access to FCM and the Instance ID APIs, request:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages/send#authorization-scopes
var Scopes = []string{
	"https://www.googleapis.com/auth/firebase.messaging",
}

// ServiceAccount mints oauth tokens from a service-account json
// (https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk)
// and caches the last token until it expires.
type ServiceAccount struct {
	projectID string

	// service-account config
	jwtConfig *jwt.Config

	// last issued token
	token atomic.Value
}

// NewServiceAccount reads a service-account json key.
// Scope defaults to the firebase messaging scope.
func NewServiceAccount(serviceAccount []byte, scopes ...string) (*ServiceAccount, error) {

	if len(scopes) == 0 {
		scopes = Scopes
	}

	jwtConfig, err := google.JWTConfigFromJSON(serviceAccount, scopes...)
	if err != nil {
		return nil, errors.Wrap(err, "jwt config")
	}

	account := &struct {
		ProjectID string `json:"project_id"`
	}{}

	if err := json.Unmarshal(serviceAccount, account); err != nil {
		return nil, errors.Wrap(err, "account")
	}

	return &ServiceAccount{
		projectID: account.ProjectID,
		jwtConfig: jwtConfig,
	}, nil
}

// ProjectID returns the `project_id` property of the service-account json
func (s *ServiceAccount) ProjectID() string {
	return s.projectID
}

// Token returns the cached token while it is valid, otherwise a fresh one.
// Safe for concurrent use.
func (s *ServiceAccount) Token(ctx context.Context) (*oauth2.Token, error) {

	src := s.token.Load()
	if src != nil {
		token := src.(*oauth2.Token)
		if token.Valid() {
			return token, nil
		}
	}

	token, err := s.jwtConfig.TokenSource(ctx).Token()
	if err != nil {
		return nil, errors.Wrap(err, "jwt token")
	}

	s.token.Store(token)

	return token, nil
}
