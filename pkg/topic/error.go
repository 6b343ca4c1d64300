package topic

import (
	"strings"

	"github.com/dialogs/firebase-messaging/pkg/rest"
)

const (
	// ErrorCodeUnauthorized: check that the credentials are set and the
	// service account has permission to invoke the messaging API.
	ErrorCodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// ErrorCodeInvalidRequest: check the topic name and tokens.
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrorCodeServerError      ErrorCode = "SERVER_ERROR"
	ErrorCodeInternalRequest  ErrorCode = "INTERNAL_REQUEST_ERROR"
	ErrorCodeInternalResponse ErrorCode = "INTERNAL_RESPONSE_ERROR"
	ErrorCodeUnknown          ErrorCode = "UNKNOWN"
)

// ErrorCode is the topic-management error classification.
type ErrorCode string

// ManagementError is the error type of the topic management calls.
type ManagementError struct {
	Code   ErrorCode
	Reason string

	cause error
}

func (e *ManagementError) Error() string {

	b := strings.Builder{}
	b.WriteString(string(e.Code))

	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}

	return b.String()
}

func (e *ManagementError) Unwrap() error {
	return e.cause
}

// newError narrows a pipeline error to the topic-management taxonomy.
// The request/response build failures collapse to single codes; the
// original reason stays in Reason.
func newError(src *rest.Error) *ManagementError {

	e := &ManagementError{cause: src}

	switch src.Code {
	case rest.CodeBuildRequest, rest.CodeHTTPRequest:
		e.Code = ErrorCodeInternalRequest
		e.Reason = src.Reason

	case rest.CodeDecode, rest.CodeDeserialize:
		e.Code = ErrorCodeInternalResponse
		e.Reason = src.Reason

	case rest.CodeUnauthorized:
		e.Code = ErrorCodeUnauthorized
		e.Reason = src.Reason

	case rest.CodeInvalidRequest:
		e.Code = ErrorCodeInvalidRequest
		e.Reason = src.Details

	case rest.CodeInternal:
		e.Code = ErrorCodeServerError

	default:
		e.Code = ErrorCodeUnknown
	}

	return e
}
