package fcm

import (
	"context"
	"net/url"

	"github.com/dialogs/firebase-messaging/pkg/rest"
)

// Client sends messages through the FCM HTTP v1 API:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages/send
type Client struct {
	rest     *rest.Client
	endpoint string
}

func New(restClient *rest.Client, projectID string) *Client {
	return &Client{
		rest:     restClient,
		endpoint: getEndpoint(projectID),
	}
}

// Request format:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages/send#request-body
type sendRequest struct {
	ValidateOnly bool    `json:"validate_only,omitempty"`
	Message      Message `json:"message"`
}

// Send delivers the message.
func (c *Client) Send(ctx context.Context, message Message) (*MessageOutput, error) {
	return c.send(ctx, message, false)
}

// Validate runs the message through the API without delivering it
// (the validate_only dry run option).
func (c *Client) Validate(ctx context.Context, message Message) (*MessageOutput, error) {
	return c.send(ctx, message, true)
}

func (c *Client) send(ctx context.Context, message Message, validateOnly bool) (*MessageOutput, error) {

	payload := &sendRequest{
		ValidateOnly: validateOnly,
		Message:      message,
	}

	out := &MessageOutput{}
	if err := c.rest.Post(ctx, c.endpoint, payload, out); err != nil {
		return nil, newError(err)
	}

	return out, nil
}

func getEndpoint(projectID string) string {

	projectID = url.PathEscape(projectID)
	return "https://fcm.googleapis.com/v1/projects/" + projectID + "/messages:send"
}
