package topic

import (
	"context"
	"net/url"

	"github.com/dialogs/firebase-messaging/pkg/rest"
)

const (
	infoEndpoint  = "https://iid.googleapis.com/iid/info"
	batchEndpoint = "https://iid.googleapis.com/iid/v1"
)

// the iid endpoints accept oauth bearer tokens only when this marker
// header is present:
// https://developers.google.com/instance-id/reference/server
var accessTokenAuth = rest.Header{Key: "access_token_auth", Value: "true"}

// Client manages topic subscriptions through the Instance ID server API:
// https://developers.google.com/instance-id/reference/server
//
// Google provides no API to list the tokens of a topic and never removes
// inactive or expired tokens by itself. Keep track of the token/topic
// relation (e.g. in a database) for real control over subscriptions.
type Client struct {
	rest *rest.Client
}

func New(restClient *rest.Client) *Client {
	return &Client{
		rest: restClient,
	}
}

// Subscribe associates a registration token with a topic.
// No "/topics/" prefix on the topic name.
func (c *Client) Subscribe(ctx context.Context, topic, token string) (map[string]string, error) {

	out := make(map[string]string)
	if err := c.rest.Put(ctx, getRelEndpoint(token, topic), nil, &out, accessTokenAuth); err != nil {
		return nil, newError(err)
	}

	return out, nil
}

// BatchSubscribe associates up to 1000 registration tokens with a topic in
// one call. Per-token outcomes are reported in the response, in order.
func (c *Client) BatchSubscribe(ctx context.Context, topic string, tokens []string) (*ManagementResponse, error) {
	return c.batch(ctx, batchEndpoint+":batchAdd", topic, tokens)
}

// BatchUnsubscribe removes the association of registration tokens with a
// topic.
func (c *Client) BatchUnsubscribe(ctx context.Context, topic string, tokens []string) (*ManagementResponse, error) {
	return c.batch(ctx, batchEndpoint+":batchRemove", topic, tokens)
}

type batchRequest struct {
	To                 string   `json:"to"`
	RegistrationTokens []string `json:"registration_tokens"`
}

func (c *Client) batch(ctx context.Context, endpoint, topic string, tokens []string) (*ManagementResponse, error) {

	payload := &batchRequest{
		To:                 "/topics/" + topic,
		RegistrationTokens: tokens,
	}

	out := &ManagementResponse{}
	if err := c.rest.Post(ctx, endpoint, payload, out, accessTokenAuth); err != nil {
		return nil, newError(err)
	}

	return out, nil
}

// Info returns information about a token: application, authorized entity,
// platform. With details, the response also carries the topics the token
// is associated to (the rel field).
func (c *Client) Info(ctx context.Context, token string, details bool) (*TopicInfoResponse, error) {

	endpoint := infoEndpoint + "/" + url.PathEscape(token)
	if details {
		endpoint += "?details=true"
	}

	out := &TopicInfoResponse{}
	if err := c.rest.Get(ctx, endpoint, out, accessTokenAuth); err != nil {
		return nil, newError(err)
	}

	return out, nil
}

// ImportRequest is the iid/v1:batchImport payload: bulk import of existing
// APNs tokens, mapping them to registration tokens.
type ImportRequest struct {
	// example: "com.google.FCMTestApp"
	Application string `json:"application"`
	// sandbox or production APNs environment
	Sandbox    bool     `json:"sandbox"`
	ApnsTokens []string `json:"apns_tokens"`
}

// ImportAPNSTokens creates registration tokens for existing APNs tokens.
func (c *Client) ImportAPNSTokens(ctx context.Context, req *ImportRequest) (*ImportResponse, error) {

	out := &ImportResponse{}
	if err := c.rest.Post(ctx, batchEndpoint+":batchImport", req, out, accessTokenAuth); err != nil {
		return nil, newError(err)
	}

	return out, nil
}

func getRelEndpoint(token, topic string) string {
	return batchEndpoint + "/" + url.PathEscape(token) + "/rel/topics/" + url.PathEscape(topic)
}
