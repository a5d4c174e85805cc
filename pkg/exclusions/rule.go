package exclusions

import (
	"sort"
)

// Rule bundles skip-predicates (the test is omitted when any matches),
// fail-predicates (the test is expected to error when any matches) and
// classification tags. Rules are immutable; composition returns new values,
// so rules are safe to share across concurrently running tests.
type Rule struct {
	skips []Predicate
	fails []Predicate
	tags  map[string]struct{}
}

func newRule() *Rule {
	return &Rule{tags: make(map[string]struct{})}
}

func (r *Rule) clone() *Rule {
	res := newRule()
	res.skips = appendPredicates(res.skips, r.skips)
	res.fails = appendPredicates(res.fails, r.fails)
	for tag := range r.tags {
		res.tags[tag] = struct{}{}
	}
	return res
}

// appendPredicates unions src into dst, keeping insertion order and
// deduplicating on predicate identity.
func appendPredicates(dst []Predicate, src []Predicate) []Predicate {
	for _, p := range src {
		seen := false
		for _, q := range dst {
			if p == q {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, p)
		}
	}
	return dst
}

// Add unions this rule with others into a new rule. Union over skips, fails
// and tags is commutative and associative, so rules compose incrementally in
// any order.
func (r *Rule) Add(others ...*Rule) *Rule {
	res := r.clone()
	for _, other := range others {
		res.skips = appendPredicates(res.skips, other.skips)
		res.fails = appendPredicates(res.fails, other.fails)
		for tag := range other.tags {
			res.tags[tag] = struct{}{}
		}
	}
	return res
}

// Negate returns a rule with every skip and fail predicate logically
// inverted. Tags pass through unchanged.
func (r *Rule) Negate() *Rule {
	res := newRule()
	for _, p := range r.skips {
		res.skips = append(res.skips, NewNotPredicate(p, ""))
	}
	for _, p := range r.fails {
		res.fails = append(res.fails, NewNotPredicate(p, ""))
	}
	for tag := range r.tags {
		res.tags[tag] = struct{}{}
	}
	return res
}

// AsSkips folds fail-predicates into skip-predicates, for when an expected
// failure should suppress execution entirely.
func (r *Rule) AsSkips() *Rule {
	res := newRule()
	res.skips = appendPredicates(res.skips, r.skips)
	res.skips = appendPredicates(res.skips, r.fails)
	for tag := range r.tags {
		res.tags[tag] = struct{}{}
	}
	return res
}

// EnabledFor reports whether no skip or fail predicate matches the context.
func (r *Rule) EnabledFor(ctx *Context) bool {
	for _, p := range r.allPredicates() {
		if p.Evaluate(ctx) {
			return false
		}
	}
	return true
}

// MatchingReasons returns the descriptions of every matching predicate,
// skips first, in declaration order.
func (r *Rule) MatchingReasons(ctx *Context) []string {
	reasons := make([]string, 0)
	for _, p := range r.allPredicates() {
		if p.Evaluate(ctx) {
			reasons = append(reasons, p.Describe(ctx, false))
		}
	}
	return reasons
}

// IncludeInRun reports whether a test carrying this rule's tags belongs to a
// run filtered by include and exclude tag sets: excluded tags always win,
// and an empty include set admits everything.
func (r *Rule) IncludeInRun(includeTags []string, excludeTags []string) bool {
	for _, tag := range excludeTags {
		if _, ok := r.tags[tag]; ok {
			return false
		}
	}
	if len(includeTags) == 0 {
		return true
	}
	for _, tag := range includeTags {
		if _, ok := r.tags[tag]; ok {
			return true
		}
	}
	return false
}

func (r *Rule) Skips() []Predicate {
	return append([]Predicate(nil), r.skips...)
}

func (r *Rule) Fails() []Predicate {
	return append([]Predicate(nil), r.fails...)
}

func (r *Rule) Tags() []string {
	tags := make([]string, 0, len(r.tags))
	for tag := range r.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (r *Rule) allPredicates() []Predicate {
	all := make([]Predicate, 0, len(r.skips)+len(r.fails))
	all = append(all, r.skips...)
	all = appendPredicates(all, r.fails)
	return all
}
