package fcm

import (
	"strconv"
	"strings"
	"time"

	"github.com/dialogs/firebase-messaging/pkg/rest"
)

const (
	// ErrorCodeInternalRequest: the request could not be built or the
	// exchange did not complete.
	ErrorCodeInternalRequest ErrorCode = "INTERNAL_REQUEST_ERROR"

	// ErrorCodeInternalResponse: the response body could not be read or
	// did not parse into the expected type.
	ErrorCodeInternalResponse ErrorCode = "INTERNAL_RESPONSE_ERROR"

	ErrorCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrorCodeRetryableInternal: server-side failure with a suggested
	// retry delay. The client never retries on its own.
	ErrorCodeRetryableInternal ErrorCode = "RETRYABLE_INTERNAL"

	ErrorCodeInternal ErrorCode = "INTERNAL"
	ErrorCodeUnknown  ErrorCode = "UNKNOWN"
)

// ErrorCode is the messaging-level error classification.
type ErrorCode string

// Error is the error type of the messaging API calls.
type Error struct {
	Code ErrorCode

	// Reason keeps the failure detail: the build/transport reason, the
	// deserialize reason with the raw response text, or the body of a 400
	// response.
	Reason string

	// RetryAfter is set for ErrorCodeRetryableInternal.
	RetryAfter time.Duration

	// Status is the http status code for ErrorCodeUnknown.
	Status int

	cause error
}

func (e *Error) Error() string {

	b := strings.Builder{}
	b.WriteString(string(e.Code))

	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}

	if e.Code == ErrorCodeUnknown {
		b.WriteString(": status ")
		b.WriteString(strconv.Itoa(e.Status))
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newError narrows a pipeline error to the messaging taxonomy. The mapping
// is total: every pipeline code has exactly one counterpart here.
func newError(src *rest.Error) *Error {

	e := &Error{cause: src}

	switch src.Code {
	case rest.CodeBuildRequest:
		e.Code = ErrorCodeInternalRequest
		e.Reason = src.Reason

	case rest.CodeHTTPRequest:
		e.Code = ErrorCodeInternalRequest
		e.Reason = "unable to process http request"

	case rest.CodeUnauthorized:
		e.Code = ErrorCodeUnauthorized
		e.Reason = src.Reason

	case rest.CodeDecode:
		e.Code = ErrorCodeInternalResponse
		e.Reason = "unable to decode response body bytes"

	case rest.CodeDeserialize:
		e.Code = ErrorCodeInternalResponse
		e.Reason = "unable to deserialize response body to type: " + src.Reason + ": " + src.Source

	case rest.CodeInvalidRequest:
		e.Code = ErrorCodeInvalidRequest
		e.Reason = src.Details

	case rest.CodeInternal:
		if src.RetryAfter > 0 {
			e.Code = ErrorCodeRetryableInternal
			e.RetryAfter = src.RetryAfter
		} else {
			e.Code = ErrorCodeInternal
		}

	default:
		e.Code = ErrorCodeUnknown
		e.Status = src.Status
	}

	return e
}
