package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-configger/pkg/generator"
)

// Status is the outcome of one generator run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Result records what a single generator produced.
type Result struct {
	Generator string
	Status    Status
	Output    []byte
	Err       error
}

// Report lists every generator outcome of one dispatch in execution order.
type Report struct {
	Session string
	Policy  Policy
	Results []Result
}

// Result returns the outcome recorded for the named generator.
func (r Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Generator == name {
			return res, true
		}
	}
	return Result{}, false
}

// Output returns the bytes written by the named generator.
func (r Report) Output(name string) []byte {
	res, _ := r.Result(name)
	return res.Output
}

// Failures returns the failed results in execution order.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Err returns a DispatchError covering every failure, or nil.
func (r Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	out := &DispatchError{Policy: r.Policy}
	for _, res := range failures {
		out.Failures = append(out.Failures, &generator.Failure{Generator: res.Generator, Err: res.Err})
	}
	return out
}

// DispatchError aggregates the generator failures of one dispatch.
type DispatchError struct {
	Policy   Policy
	Failures []*generator.Failure
}

func (e *DispatchError) Error() string {
	if len(e.Failures) == 1 {
		return "pipeline: " + e.Failures[0].Error()
	}
	msgs := make([]string, len(e.Failures))
	for i, failure := range e.Failures {
		msgs[i] = failure.Error()
	}
	return fmt.Sprintf("pipeline: %d generators failed:\n%s", len(e.Failures), strings.Join(msgs, "\n"))
}

// Unwrap exposes each failure to errors.Is and errors.As.
func (e *DispatchError) Unwrap() []error {
	out := make([]error, len(e.Failures))
	for i, failure := range e.Failures {
		out[i] = failure
	}
	return out
}

// First returns the earliest failure.
func (e *DispatchError) First() *generator.Failure {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[0]
}

// AsDispatchError is a convenience around errors.As.
func AsDispatchError(err error) (*DispatchError, bool) {
	var out *DispatchError
	ok := errors.As(err, &out)
	return out, ok
}
