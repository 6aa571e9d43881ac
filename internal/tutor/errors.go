package tutor

import (
	"errors"
	"fmt"
)

// Error kinds for the action pipeline. The HTTP boundary classifies
// with errors.Is to pick the status code; everything non-validation is
// a 500.
var (
	// ErrValidation marks a missing required field or unknown action,
	// surfaced before any upload or model call happens.
	ErrValidation = errors.New("validation failure")
	// ErrUpload marks a file-store upload failure. Any single failed
	// upload aborts the whole turn.
	ErrUpload = errors.New("upload failure")
	// ErrModelCall marks a failed remote generation call, including the
	// outer deadline expiring.
	ErrModelCall = errors.New("model call failure")
	// ErrMalformedOutput marks a structured action whose model output
	// could not be parsed as the expected JSON shape.
	ErrMalformedOutput = errors.New("malformed model output")
)

// Error carries a client-facing message tagged with a pipeline kind.
// The message alone goes into the error envelope; the kind stays
// server-side for status mapping and logging.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func errf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
