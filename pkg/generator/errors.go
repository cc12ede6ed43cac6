package generator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-configger/pkg/builder"
)

var (
	// ErrValidation matches every ValidationError through errors.Is.
	ErrValidation = errors.New("generator: validation failed")
	// ErrGeneration matches every GenerationError through errors.Is.
	ErrGeneration = errors.New("generator: generation failed")
)

// ValidationError reports a tree element that violates a generator rule. The
// message identifies the offending element in human-readable form.
type ValidationError struct {
	Path    builder.Path
	Message string
}

// Validationf builds a ValidationError for path.
func Validationf(path builder.Path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// GenerationError wraps generator faults unrelated to validation.
type GenerationError struct {
	Path builder.Path
	Err  error
}

func (e *GenerationError) Error() string {
	if !e.Path.IsZero() {
		return fmt.Sprintf("generation failed at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrGeneration) match.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// Classify returns err unchanged when it already is a ValidationError or a
// GenerationError and wraps anything else in a GenerationError.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return err
	}
	var generation *GenerationError
	if errors.As(err, &generation) {
		return err
	}
	return &GenerationError{Err: err}
}

// PathOf extracts the offending tree path from err, if any.
func PathOf(err error) builder.Path {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Path
	}
	var generation *GenerationError
	if errors.As(err, &generation) {
		return generation.Path
	}
	return builder.Path{}
}

// Failure attributes an error to the generator that produced it.
type Failure struct {
	Generator string
	Err       error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("generator %q: %v", f.Generator, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
