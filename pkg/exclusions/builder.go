package exclusions

import (
	"fmt"
)

// Declarative rule constructors. Malformed descriptors are programmer errors
// in test declarations, so this layer panics immediately instead of deferring
// to run time; the Descriptor.Resolve API returns plain errors for callers
// that want them.

func mustResolve(d Descriptor, reason string) Predicate {
	p, err := d.Resolve(reason)
	if err != nil {
		panic(fmt.Errorf("exclusions: %w", err))
	}
	return p
}

// SkipIf builds a rule that omits the test when the predicate matches.
func SkipIf(d Descriptor, reason string) *Rule {
	r := newRule()
	r.skips = append(r.skips, mustResolve(d, reason))
	return r
}

// FailsIf builds a rule that expects the test to error when the predicate
// matches.
func FailsIf(d Descriptor, reason string) *Rule {
	r := newRule()
	r.fails = append(r.fails, mustResolve(d, reason))
	return r
}

// OnlyIf skips the test unless the predicate holds.
func OnlyIf(d Descriptor, reason string) *Rule {
	return SkipIf(Pred(NewNotPredicate(mustResolve(d, ""), "")), reason)
}

// SucceedsIf expects failure unless the predicate holds.
func SucceedsIf(d Descriptor, reason string) *Rule {
	return FailsIf(Pred(NewNotPredicate(mustResolve(d, ""), "")), reason)
}

// Fails marks the test as expected to fail everywhere.
func Fails(reason string) *Rule {
	if reason == "" {
		reason = "expected to fail"
	}
	return FailsIf(Bool(true), reason)
}

// FailsOn expects failure on the given backend spec.
func FailsOn(db string, reason string) *Rule {
	return FailsIf(Text(db), reason)
}

// FailsOnEverythingExcept expects failure on every backend but the given ones.
func FailsOnEverythingExcept(dbs ...string) *Rule {
	return SucceedsIf(textList(dbs), "")
}

// Future expects the test to fail wherever the predicate matches, marking
// behavior that has not landed yet.
func Future(fn func(ctx *Context) bool) *Rule {
	return FailsIf(Func(fn), "future feature")
}

// Skip omits the test on the given backend spec.
func Skip(db string, reason string) *Rule {
	return SkipIf(Text(db), reason)
}

// OnlyOn omits the test on every backend but the given ones.
func OnlyOn(dbs []string, reason string) *Rule {
	return OnlyIf(textList(dbs), reason)
}

// Exclude omits the test on backends matching the version constraint.
func Exclude(db string, op string, reason string, specs ...Version) *Rule {
	return SkipIf(Spec(db, op, specs...), reason)
}

// Open marks the test to always run.
func Open() *Rule {
	return SkipIf(Bool(false), "mark as execute")
}

// Closed marks the test to always skip.
func Closed() *Rule {
	return SkipIf(Bool(true), "marked as skip")
}

// RequiresTag classifies the test under a single tag.
func RequiresTag(tag string) *Rule {
	return Tags(tag)
}

// Tags classifies the test for include/exclude run filtering.
func Tags(tags ...string) *Rule {
	r := newRule()
	for _, tag := range tags {
		r.tags[tag] = struct{}{}
	}
	return r
}

// DBSpec builds a disjunction over backend descriptors.
func DBSpec(dbs ...string) Predicate {
	return mustResolve(textList(dbs), "")
}

// Matches evaluates descriptors directly against a context, for ad hoc
// checks outside the rule flow.
func Matches(ctx *Context, descs ...Descriptor) bool {
	if len(descs) == 0 {
		panic(fmt.Errorf("exclusions: no descriptors to match"))
	}
	return mustResolve(List(descs...), "").Evaluate(ctx)
}

func textList(dbs []string) Descriptor {
	items := make([]Descriptor, 0, len(dbs))
	for _, db := range dbs {
		items = append(items, Text(db))
	}
	return List(items...)
}
