package aios

import "fmt"

// TransportError is returned when the device answers with an HTTP status
// other than 200.
type TransportError struct {
	Action     string
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: http status %d", e.Action, e.StatusCode)
}

// MalformedResponseError is returned when a reply is not well-formed XML or
// lacks an element or attribute the caller needs.
type MalformedResponseError struct {
	// Context names the reply and unwrap level, e.g. "GetCurrentState/event".
	Context string
	// Field is the missing element or attribute. Empty for parse failures.
	Field string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed response (%s): missing %s", e.Context, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed response (%s): %v", e.Context, e.Err)
	}
	return fmt.Sprintf("malformed response (%s)", e.Context)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func missing(context, field string) error {
	return &MalformedResponseError{Context: context, Field: field}
}

func malformed(context string, err error) error {
	return &MalformedResponseError{Context: context, Err: err}
}
