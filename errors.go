package inkwell

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller mistakes: contradictory lookup keys,
	// a sidebar link with both or neither target, an unparseable date.
	// Distinct from "not found", which is a nil result rather than an error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRender wraps failures from the markdown render collaborator. Callers
	// surface it as a retryable user error rather than a fault.
	ErrRender = errors.New("render failed")
)

// ValidationError rejects a single settings field with enough detail for the
// caller to re-render the form.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
