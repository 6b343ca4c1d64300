package rest

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dialogs/firebase-messaging/pkg/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type errProvider struct{}

func (errProvider) Token(_ context.Context) (*oauth2.Token, error) {
	return nil, errors.New("no credentials")
}

func TestDoSuccess(t *testing.T) {

	var gotRequest *http.Request
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r
		gotBody, _ = ioutil.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"name":"projects/p/messages/1"}`))
	}))
	defer server.Close()

	client := New(auth.NewStatic("test-token"))

	out := &struct {
		Name string `json:"name"`
	}{}

	restErr := client.Post(context.Background(), server.URL,
		map[string]string{"key": "value"},
		out,
		Header{Key: "access_token_auth", Value: "true"})

	require.Nil(t, restErr)
	require.Equal(t, "projects/p/messages/1", out.Name)

	require.Equal(t, http.MethodPost, gotRequest.Method)
	require.Equal(t, "Bearer test-token", gotRequest.Header.Get("Authorization"))
	require.Equal(t, "application/json", gotRequest.Header.Get("Content-Type"))
	require.Equal(t, "application/json", gotRequest.Header.Get("Accept"))
	require.Equal(t, "true", gotRequest.Header.Get("access_token_auth"))
	require.JSONEq(t, `{"key":"value"}`, string(gotBody))
}

func TestDoEmptyBody(t *testing.T) {

	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = ioutil.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(auth.NewStatic("test-token"))

	out := make(map[string]string)
	require.Nil(t, client.Get(context.Background(), server.URL, &out))
	require.Empty(t, out)
	require.Empty(t, gotBody)
}

func TestDoClassification(t *testing.T) {

	for _, tc := range []struct {
		name       string
		status     int
		body       string
		header     map[string]string
		code       Code
		details    string
		retryAfter time.Duration
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			code:   CodeUnauthorized,
		},
		{
			name:    "bad request with details",
			status:  http.StatusBadRequest,
			body:    "reason text",
			code:    CodeInvalidRequest,
			details: "reason text",
		},
		{
			name:   "bad request without details",
			status: http.StatusBadRequest,
			code:   CodeInvalidRequest,
		},
		{
			name:   "other client error",
			status: http.StatusForbidden,
			body:   "ignored",
			code:   CodeInvalidRequest,
		},
		{
			name:       "server error with retry",
			status:     http.StatusInternalServerError,
			header:     map[string]string{"Retry-After": "30"},
			code:       CodeInternal,
			retryAfter: 30 * time.Second,
		},
		{
			name:   "server error without retry",
			status: http.StatusInternalServerError,
			code:   CodeInternal,
		},
		{
			name:   "server error with http-date retry",
			status: http.StatusServiceUnavailable,
			header: map[string]string{"Retry-After": "Wed, 21 Oct 2015 07:28:00 GMT"},
			code:   CodeInternal,
		},
		{
			name:   "unknown status",
			status: http.StatusFound,
			code:   CodeUnknown,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tc.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := New(auth.NewStatic("test-token"))

			restErr := client.Post(context.Background(), server.URL, nil, nil)
			require.NotNil(t, restErr)
			require.Equal(t, tc.code, restErr.Code)
			require.Equal(t, tc.details, restErr.Details)
			require.Equal(t, tc.retryAfter, restErr.RetryAfter)

			if tc.code == CodeUnknown {
				require.Equal(t, tc.status, restErr.Status)
			}
		})
	}
}

func TestDoDeserializeFailureKeepsSource(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := New(auth.NewStatic("test-token"))

	out := make(map[string]string)
	restErr := client.Post(context.Background(), server.URL, nil, &out)

	require.NotNil(t, restErr)
	require.Equal(t, CodeDeserialize, restErr.Code)
	require.Equal(t, "not json", restErr.Source)
	require.NotEmpty(t, restErr.Reason)
	require.Error(t, restErr.Unwrap())
}

func TestDoTokenFailure(t *testing.T) {

	client := New(errProvider{})

	restErr := client.Post(context.Background(), "https://example.com", nil, nil)
	require.NotNil(t, restErr)
	require.Equal(t, CodeUnauthorized, restErr.Code)
	require.Equal(t, "unable to get header token", restErr.Reason)

	// the provider failure stays reachable for diagnostics
	require.EqualError(t, errors.Cause(restErr.Unwrap()), "no credentials")
}

func TestDoTransportFailure(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	client := New(auth.NewStatic("test-token"))

	restErr := client.Post(context.Background(), server.URL, nil, nil)
	require.NotNil(t, restErr)
	require.Equal(t, CodeHTTPRequest, restErr.Code)
	require.Error(t, restErr.Unwrap())
}

func TestDoBuildRequestFailure(t *testing.T) {

	client := New(auth.NewStatic("test-token"))

	restErr := client.Post(context.Background(), "://invalid", nil, nil)
	require.NotNil(t, restErr)
	require.Equal(t, CodeBuildRequest, restErr.Code)
}

func TestDoPayloadEncodeFailure(t *testing.T) {

	client := New(auth.NewStatic("test-token"))

	restErr := client.Post(context.Background(), "https://example.com", func() {}, nil)
	require.NotNil(t, restErr)
	require.Equal(t, CodeBuildRequest, restErr.Code)
	require.Equal(t, "encode payload", restErr.Reason)
}
