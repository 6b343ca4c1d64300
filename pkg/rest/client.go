package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/dialogs/firebase-messaging/pkg/auth"
	"github.com/dialogs/firebase-messaging/pkg/metric"
	"go.uber.org/zap"
)

const DefaultTimeout = time.Second * 10

// Doer is the transport boundary. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Header is an extra request header supplied by an endpoint.
type Header struct {
	Key   string
	Value string
}

// Client sends authorized json requests to google API endpoints and
// classifies the outcome. One instance is shared by all feature clients and
// is safe for concurrent use.
type Client struct {
	doer   Doer
	tokens auth.Provider
	logger *zap.Logger
	metric *metric.Provider
}

type Option func(*Client)

func WithDoer(doer Doer) Option {
	return func(c *Client) { c.doer = doer }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetric(provider *metric.Provider) Option {
	return func(c *Client) { c.metric = provider }
}

func New(tokens auth.Provider, opts ...Option) *Client {

	c := &Client{
		tokens: tokens,
		doer:   &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Post sends a json payload. A nil payload sends an empty body.
func (c *Client) Post(ctx context.Context, endpoint string, payload, out interface{}, extra ...Header) *Error {
	return c.Do(ctx, http.MethodPost, endpoint, payload, out, extra...)
}

// Put sends a json payload with the PUT method.
func (c *Client) Put(ctx context.Context, endpoint string, payload, out interface{}, extra ...Header) *Error {
	return c.Do(ctx, http.MethodPut, endpoint, payload, out, extra...)
}

// Get requests an endpoint without a body.
func (c *Client) Get(ctx context.Context, endpoint string, out interface{}, extra ...Header) *Error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out, extra...)
}

// Do executes one authorized exchange:
// obtain a token, serialize the payload, build the request, send it and
// classify the response. On 200 the body is decoded into out (when out is
// not nil).
func (c *Client) Do(ctx context.Context, method, endpoint string, payload, out interface{}, extra ...Header) *Error {

	token, err := c.tokens.Token(ctx)
	if err != nil {
		// the provider's failure detail is wrapped, not surfaced in Reason
		return newUnauthorized("unable to get header token", err)
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return newBuildRequestFailure("encode payload", err)
		}
	}

	req, err := http.NewRequest(method, endpoint, bytes.NewReader(body))
	if err != nil {
		return newBuildRequestFailure("new request", err)
	}
	req = req.WithContext(ctx)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", token.Type()+" "+token.AccessToken)
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))

	for _, h := range extra {
		req.Header.Set(h.Key, h.Value)
	}

	var timerCancel func()
	if c.metric != nil {
		timerCancel = c.metric.NewIOTimer()
	}

	res, err := c.doer.Do(req)

	if timerCancel != nil {
		timerCancel()
	}

	if err != nil {
		c.observe(newHTTPRequestFailure(err), method, endpoint)
		return newHTTPRequestFailure(err)
	}
	defer res.Body.Close()

	retErr := c.handleResponse(res, out)
	c.observe(retErr, method, endpoint)

	return retErr
}

func (c *Client) observe(e *Error, method, endpoint string) {

	if e == nil {
		if c.metric != nil {
			c.metric.SuccessInc()
		}
		return
	}

	if c.metric != nil {
		c.metric.FailsInc()
	}

	c.logger.Debug("request failed",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Error(e))
}

func (c *Client) handleResponse(res *http.Response, out interface{}) *Error {

	switch {
	case res.StatusCode == http.StatusOK:
		data, err := ioutil.ReadAll(res.Body)
		if err != nil {
			return newDecodeFailure(err)
		}

		if out == nil {
			return nil
		}

		if err := json.Unmarshal(data, out); err != nil {
			// keep the raw text for diagnostics
			return newDeserializeFailure(err.Error(), string(data), err)
		}

		return nil

	case res.StatusCode == http.StatusUnauthorized:
		return newUnauthorized("unable to access firebase resource", nil)

	case res.StatusCode == http.StatusBadRequest:
		data, err := ioutil.ReadAll(res.Body)
		if err != nil {
			return newDecodeFailure(err)
		}

		return newInvalidRequest(string(data))

	case res.StatusCode >= 400 && res.StatusCode < 500:
		return newInvalidRequest("")

	case res.StatusCode >= 500 && res.StatusCode < 600:
		return newInternal(retryAfter(res.Header))

	default:
		return newUnknown(res.StatusCode)
	}
}

// retryAfter reads an integer second count from the Retry-After header.
// The http-date form of the header is not produced by the firebase
// endpoints and is ignored.
func retryAfter(h http.Header) time.Duration {

	sec, err := strconv.ParseUint(h.Get("Retry-After"), 10, 64)
	if err != nil {
		return 0
	}

	return time.Duration(sec) * time.Second
}
