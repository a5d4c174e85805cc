package harness

import (
	"fmt"
	"io"
	"os"
	"time"

	"log/slog"

	"github.com/lunarbay/proviso/pkg/exclusions"
)

// Enforcer applies a rule around test invocations: it decides before
// execution whether to skip, runs the body, and reconciles the observed
// result against the rule's fail-predicates. Each invocation moves
// pending -> skipped or running -> completed or failed; the terminal state is
// reported as the outcome kind. Expected-failure diagnostics go to Out in the
// form "<name> failed as expected (<predicate>): <error>".
type Enforcer struct {
	Out io.Writer
}

func NewEnforcer() *Enforcer {
	return &Enforcer{Out: os.Stdout}
}

// Run enforces rule around fn and returns the outcome. The original error of
// an unexpected failure is passed through unchanged in Outcome.Err; panics in
// the body are recovered into errors.
func (e *Enforcer) Run(ctx *exclusions.Context, name string, rule *exclusions.Rule, fn func() error) *Outcome {
	start := time.Now()

	for _, skip := range rule.Skips() {
		if skip.Evaluate(ctx) {
			reason := fmt.Sprintf("'%s' : %s", name, skip.Describe(ctx, false))
			slog.Debug("test skipped", "name", name, "reason", reason)
			return &Outcome{
				Name:     name,
				Kind:     OutcomeSkipped,
				Reason:   reason,
				Duration: time.Since(start),
			}
		}
	}

	err := invoke(fn)

	if err != nil {
		return e.expectFailure(ctx, name, rule, err, start)
	}
	return e.expectSuccess(ctx, name, rule, start)
}

func invoke(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return fn()
}

// expectFailure reconciles a raised error: the first matching fail-predicate
// makes it an expected failure, otherwise the original error propagates
// unchanged.
func (e *Enforcer) expectFailure(ctx *exclusions.Context, name string, rule *exclusions.Rule, err error, start time.Time) *Outcome {
	for _, fail := range rule.Fails() {
		if fail.Evaluate(ctx) {
			desc := fail.Describe(ctx, false)
			fmt.Fprintf(e.out(), "%s failed as expected (%s): %s\n", name, desc, err)
			return &Outcome{
				Name:     name,
				Kind:     OutcomeExpectedFailure,
				Matched:  []string{desc},
				Err:      err,
				Duration: time.Since(start),
			}
		}
	}
	return &Outcome{
		Name:     name,
		Kind:     OutcomeUnexpectedFailure,
		Err:      err,
		Duration: time.Since(start),
	}
}

// expectSuccess verifies a normal return: any matching fail-predicate turns
// it into an unexpected success naming the matching predicates.
func (e *Enforcer) expectSuccess(ctx *exclusions.Context, name string, rule *exclusions.Rule, start time.Time) *Outcome {
	matched := make([]string, 0)
	for _, fail := range rule.Fails() {
		if fail.Evaluate(ctx) {
			matched = append(matched, fail.Describe(ctx, false))
		}
	}
	if len(matched) > 0 {
		return &Outcome{
			Name:     name,
			Kind:     OutcomeUnexpectedSuccess,
			Matched:  matched,
			Err:      &UnexpectedSuccessError{Name: name, Predicates: matched},
			Duration: time.Since(start),
		}
	}
	return &Outcome{
		Name:     name,
		Kind:     OutcomePassed,
		Duration: time.Since(start),
	}
}

// FailIf enforces the rule around an arbitrary block instead of a whole test:
// every predicate of the rule (skips included) counts as a fail-predicate,
// the skip pre-check is the caller's responsibility. An expected failure
// returns nil, an unexpected success returns an UnexpectedSuccessError, any
// other error propagates unchanged.
func (e *Enforcer) FailIf(ctx *exclusions.Context, rule *exclusions.Rule, fn func() error) error {
	fails := append(rule.Skips(), rule.Fails()...)
	err := invoke(fn)

	if err != nil {
		for _, fail := range fails {
			if fail.Evaluate(ctx) {
				fmt.Fprintf(e.out(), "block failed as expected (%s): %s\n", fail.Describe(ctx, false), err)
				return nil
			}
		}
		return err
	}

	matched := make([]string, 0)
	for _, fail := range fails {
		if fail.Evaluate(ctx) {
			matched = append(matched, fail.Describe(ctx, false))
		}
	}
	if len(matched) > 0 {
		return &UnexpectedSuccessError{Name: "block", Predicates: matched}
	}
	return nil
}

func (e *Enforcer) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

// package-level convenience over a default enforcer

var defaultEnforcer = NewEnforcer()

func Run(ctx *exclusions.Context, name string, rule *exclusions.Rule, fn func() error) *Outcome {
	return defaultEnforcer.Run(ctx, name, rule, fn)
}

func FailIf(ctx *exclusions.Context, rule *exclusions.Rule, fn func() error) error {
	return defaultEnforcer.FailIf(ctx, rule, fn)
}
