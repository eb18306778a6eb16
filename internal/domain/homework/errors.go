// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

// Kind classifies a recoverable failure of one poll cycle.
type Kind int

const (
	KindUnknown       Kind = iota
	KindConnectivity       // API unreachable
	KindAPIResponse        // API answered with a non-200 status
	KindSchema             // response body has the wrong shape
	KindMissingField       // homework record lacks a required key
	KindUnknownStatus      // homework status outside the verdict table
	KindDelivery           // Telegram send failed
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindAPIResponse:
		return "api_response"
	case KindSchema:
		return "schema"
	case KindMissingField:
		return "missing_field"
	case KindUnknownStatus:
		return "unknown_status"
	case KindDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the poll pipeline.
type Error struct {
	Kind       Kind
	Op         string // stage that failed, e.g. "fetch"
	StatusCode int    // set for KindAPIResponse
	Field      string // set for KindMissingField
	Msg        string
	Err        error
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrConnectivity  = &Error{Kind: KindConnectivity}
	ErrAPIResponse   = &Error{Kind: KindAPIResponse}
	ErrSchema        = &Error{Kind: KindSchema}
	ErrMissingField  = &Error{Kind: KindMissingField}
	ErrUnknownStatus = &Error{Kind: KindUnknownStatus}
	ErrDelivery      = &Error{Kind: KindDelivery}
)

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func ConnectivityError(op string, err error) *Error {
	return &Error{Kind: KindConnectivity, Op: op, Msg: "endpoint unreachable", Err: err}
}

func APIResponseError(op string, status int) *Error {
	return &Error{Kind: KindAPIResponse, Op: op, StatusCode: status, Msg: fmt.Sprintf("unexpected HTTP status %d", status)}
}

func SchemaError(op, msg string, err error) *Error {
	return &Error{Kind: KindSchema, Op: op, Msg: msg, Err: err}
}

func MissingFieldError(field string) *Error {
	return &Error{Kind: KindMissingField, Op: "format", Field: field, Msg: fmt.Sprintf("missing key %q", field)}
}

func UnknownStatusError(status string) *Error {
	return &Error{Kind: KindUnknownStatus, Op: "format", Msg: fmt.Sprintf("unknown homework status %q", status)}
}

func DeliveryError(err error) *Error {
	return &Error{Kind: KindDelivery, Op: "notify", Msg: "message was not sent", Err: err}
}
