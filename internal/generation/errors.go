package generation

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput is an empty or blank topic.
	KindInvalidInput
	// KindConfiguration means the endpoint is unset or unusable.
	KindConfiguration
	// KindNetwork is a transport failure before any response was received.
	KindNetwork
	// KindServer is an HTTP status of 500 or above.
	KindServer
	// KindForbiddenOrCORS is HTTP 403, usually a CORS misconfiguration at the gateway.
	KindForbiddenOrCORS
	// KindHTTPStatus is any other non-success status.
	KindHTTPStatus
	// KindMalformedResponse means the body, or the body nested inside it, is not
	// the JSON structure expected.
	KindMalformedResponse
	// KindEmptyContent means the response parsed but carried no usable content.
	KindEmptyContent
	// KindCancelled means the caller's context ended while the call was in flight.
	KindCancelled
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	KindInvalidInput:      "InvalidInput",
	KindConfiguration:     "ConfigurationError",
	KindNetwork:           "NetworkError",
	KindServer:            "ServerError",
	KindForbiddenOrCORS:   "ForbiddenOrCors",
	KindHTTPStatus:        "HttpError",
	KindMalformedResponse: "MalformedResponse",
	KindEmptyContent:      "EmptyContent",
	KindCancelled:         "Cancelled",
}

// String returns the kind's stable name, e.g. "ForbiddenOrCors".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// userMessage is the end-user description shown when no more specific message is set.
func (k Kind) userMessage() string {
	switch k {
	case KindInvalidInput:
		return "blog topic cannot be empty"
	case KindConfiguration:
		return "generation endpoint is not configured"
	case KindNetwork:
		return "network or CORS error: check the API gateway CORS configuration"
	case KindServer:
		return "server error: please try again later"
	case KindForbiddenOrCORS:
		return "CORS error: the API gateway needs CORS enabled"
	case KindHTTPStatus:
		return "API request failed"
	case KindMalformedResponse:
		return "unexpected response format"
	case KindEmptyContent:
		return "no content returned from API"
	case KindCancelled:
		return "generation cancelled"
	default:
		return "unknown error occurred"
	}
}

// Error is the single error type returned by Client.Generate.
type Error struct {
	// Kind is the failure category.
	Kind Kind
	// Status is the HTTP status code for KindServer, KindForbiddenOrCORS and
	// KindHTTPStatus; zero otherwise.
	Status int
	// Message is the human-readable description. Empty means the kind's default.
	Message string
	// Detail carries diagnostics such as the response body text or which JSON
	// layer failed to parse.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.userMessage()
	}
	switch {
	case e.Detail != "":
		return msg + ": " + e.Detail
	case e.Err != nil:
		return msg + ": " + e.Err.Error()
	default:
		return msg
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the sentinel
// values below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && t.Kind == e.Kind
}

// Sentinels for errors.Is matching. Compare kinds with KindOf when the kind
// itself is needed.
var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrServer            = &Error{Kind: KindServer}
	ErrForbiddenOrCORS   = &Error{Kind: KindForbiddenOrCORS}
	ErrHTTPStatus        = &Error{Kind: KindHTTPStatus}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrEmptyContent      = &Error{Kind: KindEmptyContent}
	ErrCancelled         = &Error{Kind: KindCancelled}
)

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindUnknown
}

func newError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: cause}
}

// statusError classifies a non-success HTTP status. body is diagnostic text
// only and is never interpreted as content.
func statusError(status int, body string) *Error {
	var detail string
	if body != "" {
		detail = "response body: " + body
	}

	switch {
	case status == 403:
		return &Error{Kind: KindForbiddenOrCORS, Status: status, Detail: detail}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Detail: detail}
	default:
		return &Error{
			Kind:    KindHTTPStatus,
			Status:  status,
			Message: fmt.Sprintf("API failed with status %d", status),
			Detail:  detail,
		}
	}
}
