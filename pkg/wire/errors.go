package wire

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType     = errors.New("wire: unknown value type")
	ErrInvalidField    = errors.New("wire: invalid field")
	ErrUnsupportedKind = errors.New("wire: value kind has no wire type")
	ErrNoEndpoint      = errors.New("wire: action has no endpoint")
	ErrStatus          = errors.New("wire: unexpected response status")
)

// DecodeError reports a malformed payload. Path locates the offending
// element, for example "sections[1].values[0].data.value".
type DecodeError struct {
	Path string
	Type Type
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("wire: decode: %v", e.Err)
	}
	if e.Type != "" {
		return fmt.Sprintf("wire: decode %s (%s): %v", e.Path, e.Type, e.Err)
	}
	return fmt.Sprintf("wire: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusError is returned when a submit endpoint answers outside 2xx and
// the body carries no field errors.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("wire: submit returned %d", e.Code)
	}
	return fmt.Sprintf("wire: submit returned %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}
