package core

import (
	"errors"
	"fmt"
)

// ExtractionError reports that the page was reachable but extraction failed
type ExtractionError struct {
	Reason FailureReason
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// TransportErrorKind enumerates relay failures
type TransportErrorKind int

const (
	// NoResponder means no extraction host answered on the target
	NoResponder TransportErrorKind = iota
	// EmptyResponse means the reply channel closed without a payload
	EmptyResponse
)

func (k TransportErrorKind) String() string {
	switch k {
	case NoResponder:
		return "no_responder"
	case EmptyResponse:
		return "empty_response"
	default:
		return "unknown"
	}
}

// TransportError reports a failure to move a message across the relay
type TransportError struct {
	Kind   TransportErrorKind
	Target string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("relay to %q: %s: %v", e.Target, e.Kind, e.Err)
	}
	return fmt.Sprintf("relay to %q: %s", e.Target, e.Kind)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ClassifierErrorKind enumerates classification service failures
type ClassifierErrorKind int

const (
	// Unreachable means the connection could not be established
	Unreachable ClassifierErrorKind = iota
	// ServerError means the service answered with a non-2xx status
	ServerError
	// MalformedPayload means the response body did not have the expected shape
	MalformedPayload
	// Timeout means no response arrived before the deadline
	Timeout
)

func (k ClassifierErrorKind) String() string {
	switch k {
	case Unreachable:
		return "unreachable"
	case ServerError:
		return "server_error"
	case MalformedPayload:
		return "malformed_payload"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// ClassifierError reports a failed classification request
type ClassifierError struct {
	Kind ClassifierErrorKind
	// Status is the HTTP status line for ServerError, empty otherwise
	Status string
	Err    error
}

func (e *ClassifierError) Error() string {
	switch {
	case e.Kind == ServerError:
		return fmt.Sprintf("classifier: Server Error: %s", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("classifier: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("classifier: %s", e.Kind)
	}
}

func (e *ClassifierError) Unwrap() error {
	return e.Err
}

// IsTransportKind reports whether err is a TransportError of the given kind
func IsTransportKind(err error, kind TransportErrorKind) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == kind
}

// IsClassifierKind reports whether err is a ClassifierError of the given kind
func IsClassifierKind(err error, kind ClassifierErrorKind) bool {
	var ce *ClassifierError
	return errors.As(err, &ce) && ce.Kind == kind
}
