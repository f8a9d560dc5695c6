package content

import "errors"

// ValidationError signals an invariant violation at construction or update
// time. It always maps to a 400-class response and is never retried.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TransitionError signals a lifecycle method invoked from a status that
// disallows it (for example publishing a DRAFT).
type TransitionError struct {
	Message string
}

func NewTransitionError(message string) error {
	return &TransitionError{Message: message}
}

func (e *TransitionError) Error() string {
	return e.Message
}

func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
