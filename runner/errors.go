package runner

import (
	"errors"
	"fmt"

	"github.com/hupe1980/impulsego/engine"
)

var (
	// ErrModelNotInitialized is returned when the model has no valid
	// impulse behind it.
	ErrModelNotInitialized = errors.New("model not initialized")
	// ErrContinuousOnly indicates an operation that requires single-shot
	// mode was invoked on a continuous-mode model.
	ErrContinuousOnly = errors.New("operation not available in continuous mode")
)

// InvalidInputError indicates the caller-supplied features were rejected.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InvalidInputError struct {
	Reason string
	cause  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.cause }

// ExecutionError indicates the engine failed during inference.
//
// The engine's own status code can be accessed via errors.Unwrap.
type ExecutionError struct {
	cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error: %v", e.cause)
}

func (e *ExecutionError) Unwrap() error { return e.cause }

// translateError maps engine statuses into runner-level errors. This is the
// one layer that interprets statuses; the classifier beneath forwards them
// untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var status engine.Status
	if !errors.As(err, &status) {
		return err
	}

	switch status {
	case engine.StatusShapesDontMatch:
		return &InvalidInputError{Reason: "shapes don't match", cause: err}
	case engine.StatusInvalidSize:
		return &InvalidInputError{Reason: "invalid input size", cause: err}
	case engine.StatusOnlySupportedForImages:
		return &InvalidInputError{Reason: "only image input is supported", cause: err}
	case engine.StatusInputTensorWasNull:
		return &InvalidInputError{Reason: "input tensor was null", cause: err}
	case engine.StatusInferenceError:
		return fmt.Errorf("%w: %w", ErrModelNotInitialized, err)
	default:
		return &ExecutionError{cause: err}
	}
}
