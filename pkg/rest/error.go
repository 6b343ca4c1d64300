package rest

import (
	"strconv"
	"strings"
	"time"
)

const (
	// CodeUnauthorized: the credential provider failed or the endpoint
	// answered 401.
	CodeUnauthorized Code = iota + 1

	// CodeBuildRequest: the request (headers, uri, body) could not be
	// constructed before send.
	CodeBuildRequest

	// CodeHTTPRequest: the transport failed to complete the exchange.
	CodeHTTPRequest

	// CodeDecode: the response body could not be read.
	CodeDecode

	// CodeDeserialize: the body bytes did not parse into the expected
	// response type. Source keeps the raw text.
	CodeDeserialize

	// CodeInvalidRequest: 400, or any other 4xx without extractable details.
	CodeInvalidRequest

	// CodeInternal: any 5xx. RetryAfter is set when the response carried a
	// Retry-After header with an integer second count.
	CodeInternal

	// CodeUnknown: any status code outside the classes above.
	CodeUnknown
)

// Code is the closed set of transport-level outcomes. Feature packages
// convert it to their own error types, the conversion is always one-way.
type Code int

func (c Code) String() string {
	switch c {
	case CodeUnauthorized:
		return "unauthorized"
	case CodeBuildRequest:
		return "build request failure"
	case CodeHTTPRequest:
		return "http request failure"
	case CodeDecode:
		return "decode failure"
	case CodeDeserialize:
		return "deserialize failure"
	case CodeInvalidRequest:
		return "invalid request"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the internal error type of the request pipeline. Use the
// dedicated per-feature types (fcm.Error, topic.ManagementError) in general.
// Constructed at the point a failure is detected and immediately converted,
// never mutated.
type Error struct {
	Code Code

	// Reason holds failure detail for unauthorized, build-request and
	// deserialize outcomes.
	Reason string

	// Source keeps the raw response text of a deserialize failure.
	Source string

	// Details holds the body of a 400 response, when present.
	Details string

	// RetryAfter is the suggested delay before a retry of a 5xx outcome.
	// Zero means the server suggested none. The pipeline never retries.
	RetryAfter time.Duration

	// Status is the http status code for unknown outcomes.
	Status int

	cause error
}

func (e *Error) Error() string {

	b := strings.Builder{}
	b.WriteString(e.Code.String())

	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}

	if e.Details != "" {
		b.WriteString(": ")
		b.WriteString(e.Details)
	}

	if e.Code == CodeUnknown {
		b.WriteString(": status ")
		b.WriteString(strconv.Itoa(e.Status))
	}

	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}

	return b.String()
}

// Unwrap exposes the underlying transport/credential/parse error.
func (e *Error) Unwrap() error {
	return e.cause
}

func newUnauthorized(reason string, cause error) *Error {
	return &Error{Code: CodeUnauthorized, Reason: reason, cause: cause}
}

func newBuildRequestFailure(reason string, cause error) *Error {
	return &Error{Code: CodeBuildRequest, Reason: reason, cause: cause}
}

func newHTTPRequestFailure(cause error) *Error {
	return &Error{Code: CodeHTTPRequest, cause: cause}
}

func newDecodeFailure(cause error) *Error {
	return &Error{Code: CodeDecode, cause: cause}
}

func newDeserializeFailure(reason, source string, cause error) *Error {
	return &Error{Code: CodeDeserialize, Reason: reason, Source: source, cause: cause}
}

func newInvalidRequest(details string) *Error {
	return &Error{Code: CodeInvalidRequest, Details: details}
}

func newInternal(retryAfter time.Duration) *Error {
	return &Error{Code: CodeInternal, RetryAfter: retryAfter}
}

func newUnknown(status int) *Error {
	return &Error{Code: CodeUnknown, Status: status}
}
