package fcm

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dialogs/firebase-messaging/pkg/auth"
	"github.com/dialogs/firebase-messaging/pkg/rest"
	"github.com/dialogs/firebase-messaging/pkg/test"
	"github.com/stretchr/testify/require"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       ioutil.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestGetEndpoint(t *testing.T) {

	for _, tc := range []struct {
		projectID string
		want      string
	}{
		{
			projectID: "project-id",
			want:      "https://fcm.googleapis.com/v1/projects/project-id/messages:send",
		},
		{
			projectID: "project /\\",
			want:      "https://fcm.googleapis.com/v1/projects/project%20%2F%5C/messages:send",
		},
	} {
		require.Equal(t, tc.want, getEndpoint(tc.projectID))
	}
}

func TestSendRequestFormat(t *testing.T) {

	var (
		gotURL  string
		gotBody string
	)

	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()

		data, err := ioutil.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		gotBody = string(data)

		return jsonResponse(http.StatusOK, `{"name":"projects/project-id/messages/1"}`), nil
	})

	client := New(rest.New(auth.NewStatic("token"), rest.WithDoer(doer)), "project-id")

	out, err := client.Send(context.Background(), &TokenMessage{Token: "device-token"})
	require.NoError(t, err)
	require.Equal(t, "projects/project-id/messages/1", out.Name)

	require.Equal(t, "https://fcm.googleapis.com/v1/projects/project-id/messages:send", gotURL)

	// validate_only is absent from a real send
	require.JSONEq(t, `{"message":{"token":"device-token"}}`, gotBody)
}

func TestValidateRequestFormat(t *testing.T) {

	var gotBody string

	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		data, err := ioutil.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		gotBody = string(data)

		return jsonResponse(http.StatusOK, `{"name":"projects/project-id/messages/1"}`), nil
	})

	client := New(rest.New(auth.NewStatic("token"), rest.WithDoer(doer)), "project-id")

	_, err := client.Validate(context.Background(), &TopicMessage{Topic: "news"})
	require.NoError(t, err)

	require.JSONEq(t, `{"validate_only":true,"message":{"topic":"news"}}`, gotBody)
}

func TestSendErrorConversion(t *testing.T) {

	for _, tc := range []struct {
		name     string
		response *http.Response
		check    func(t *testing.T, e *Error)
	}{
		{
			name:     "bad request",
			response: jsonResponse(http.StatusBadRequest, "message is empty"),
			check: func(t *testing.T, e *Error) {
				require.Equal(t, ErrorCodeInvalidRequest, e.Code)
				require.Equal(t, "message is empty", e.Reason)
			},
		},
		{
			name:     "unauthorized",
			response: jsonResponse(http.StatusUnauthorized, ""),
			check: func(t *testing.T, e *Error) {
				require.Equal(t, ErrorCodeUnauthorized, e.Code)
			},
		},
		{
			name: "retryable internal",
			response: &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Body:       ioutil.NopCloser(strings.NewReader("")),
				Header:     http.Header{"Retry-After": []string{"30"}},
			},
			check: func(t *testing.T, e *Error) {
				require.Equal(t, ErrorCodeRetryableInternal, e.Code)
				require.Equal(t, 30*time.Second, e.RetryAfter)
			},
		},
		{
			name:     "garbage body",
			response: jsonResponse(http.StatusOK, "not json"),
			check: func(t *testing.T, e *Error) {
				require.Equal(t, ErrorCodeInternalResponse, e.Code)
				require.Contains(t, e.Reason, "not json")
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doer := doerFunc(func(*http.Request) (*http.Response, error) {
				return tc.response, nil
			})

			client := New(rest.New(auth.NewStatic("token"), rest.WithDoer(doer)), "project-id")

			out, err := client.Send(context.Background(), &TokenMessage{Token: "device-token"})
			require.Nil(t, out)
			require.Error(t, err)

			fcmErr, ok := err.(*Error)
			require.True(t, ok)
			tc.check(t, fcmErr)
		})
	}
}

func TestSendLive(t *testing.T) {

	account, err := test.GetGoogleServiceAccount()
	if err != nil {
		t.Skip(err.Error())
	}

	android, ios, err := test.GetPushDevices()
	if err != nil {
		t.Skip(err.Error())
	}

	provider, err := auth.NewServiceAccount(account)
	require.NoError(t, err)

	client := New(rest.New(provider), provider.ProjectID())
	ctx := context.Background()

	t.Run("android", func(t *testing.T) {
		out, err := client.Send(ctx, &TokenMessage{
			Token:        android,
			Notification: &Notification{Title: "hello"},
			Android: &AndroidConfig{
				Priority: AndroidMessagePriorityHigh,
				TTL:      Seconds(60),
			},
		})
		require.NoError(t, err)
		require.NotEmpty(t, out.Name)
	})

	t.Run("ios", func(t *testing.T) {
		out, err := client.Send(ctx, &TokenMessage{
			Token: ios,
			Apns: NewApnsConfig(
				&Aps{Alert: SimpleAlert("hello")},
				nil,
				&ApnsHeaders{ApnsPushType: ApnsPushTypeAlert}),
		})
		require.NoError(t, err)
		require.NotEmpty(t, out.Name)
	})
}
