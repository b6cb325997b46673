package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why a call to the loyalty API failed
type Kind string

const (
	KindTransport Kind = "transport" // no response: connection refused, reset, timeout
	KindStatus    Kind = "status"    // non-2xx response
	KindMalformed Kind = "malformed" // 2xx with a body no envelope shape matches
	KindRejected  Kind = "rejected"  // the API refused a mutation or answered success:false
	KindNotFound  Kind = "not_found" // definitive 404 on a single record
	KindExhausted Kind = "exhausted" // every candidate endpoint failed
)

// Error is returned by every upstream operation
type Error struct {
	Kind     Kind
	Resource string
	Endpoint string
	Status   int
	Message  string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindExhausted:
		return fmt.Sprintf("%s: no endpoint succeeded after %d attempts: %v", e.Resource, e.Attempts, e.Err)
	case KindNotFound:
		return fmt.Sprintf("%s: not found at %s", e.Resource, e.Endpoint)
	case KindStatus, KindRejected:
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(e.Status)
		}
		return fmt.Sprintf("%s: %s returned %d: %s", e.Resource, e.Endpoint, e.Status, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Resource, e.Endpoint, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Resource, e.Endpoint, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Last returns the failure of the final attempt of an exhausted call, or e itself
func (e *Error) Last() *Error {
	if e.Kind != KindExhausted {
		return e
	}
	var last *Error
	if errors.As(e.Err, &last) {
		return last
	}
	return e
}

// IsKind reports whether err is an upstream error of the given kind
func IsKind(err error, kind Kind) bool {
	var upErr *Error
	return errors.As(err, &upErr) && upErr.Kind == kind
}

// IsNotFound reports whether err is a definitive not-found
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}
