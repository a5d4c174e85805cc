package harness

import (
	"fmt"
	"strings"
	"time"
)

const (
	OutcomePassed            string = "passed"
	OutcomeSkipped           string = "skipped"
	OutcomeExpectedFailure   string = "expected-failure"
	OutcomeUnexpectedSuccess string = "unexpected-success"
	OutcomeUnexpectedFailure string = "unexpected-failure"
)

// Outcome is the per-invocation result of enforcing a rule around a test
// body. It is created fresh for every invocation and never shared.
type Outcome struct {
	Name     string        `json:"name"`
	Kind     string        `json:"kind"`
	Reason   string        `json:"reason,omitempty"`
	Matched  []string      `json:"matched,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"-"`
}

// Failed reports whether the outcome should fail the run.
func (o *Outcome) Failed() bool {
	return o.Kind == OutcomeUnexpectedSuccess || o.Kind == OutcomeUnexpectedFailure
}

// UnexpectedSuccessError signals a test that returned normally although one
// or more fail-predicates matched the context.
type UnexpectedSuccessError struct {
	Name       string
	Predicates []string
}

func (e *UnexpectedSuccessError) Error() string {
	return fmt.Sprintf("unexpected success for '%s' (%s)",
		e.Name, strings.Join(e.Predicates, " and "))
}
