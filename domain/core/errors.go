package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrComputation means an underlying statistical routine could not
	// produce a result. Callers receive it unchanged; the engine never
	// downgrades it into a default verdict.
	ErrComputation = errors.New("statistical computation failed")

	// ErrConfiguration means the caller supplied invalid parameters
	// (alpha outside (0,1), unknown regression label). Detected before
	// any test executes.
	ErrConfiguration = errors.New("invalid configuration")

	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrRunNotFound    = fmt.Errorf("%w: run", ErrNotFound)
	ErrSeriesNotFound = fmt.Errorf("%w: series", ErrNotFound)

	// Common computation failure causes, carried as the Cause of a
	// ComputationError
	ErrInsufficientData = errors.New("insufficient observations")
	ErrNonFiniteData    = errors.New("series contains non-finite values")
	ErrSingularDesign   = errors.New("regression design matrix is singular")
)

// ComputationError reports that a statistical routine failed for a specific
// test operation. It satisfies errors.Is(err, ErrComputation).
type ComputationError struct {
	Op      string // operation that failed, e.g. "adf", "kpss", "pp"
	Message string
	Cause   error
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}

// NewComputationError creates a ComputationError for the given operation.
func NewComputationError(op, message string, cause error) *ComputationError {
	return &ComputationError{Op: op, Message: message, Cause: cause}
}

// ConfigurationError reports an invalid caller-supplied parameter.
// It satisfies errors.Is(err, ErrConfiguration).
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a ConfigurationError for the given field.
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsComputationError(err error) bool {
	return errors.Is(err, ErrComputation)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
