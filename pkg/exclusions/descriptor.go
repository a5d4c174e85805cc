package exclusions

import (
	"fmt"
	"regexp"
)

// Descriptor is the closed set of shorthand forms a rule predicate can be
// declared with. Each form resolves into a Predicate exactly once, at
// construction time.
type Descriptor struct {
	kind    descriptorKind
	value   bool
	text    string
	backend string
	op      string
	specs   []Version
	fn      func(ctx *Context) bool
	items   []Descriptor
	pred    Predicate
	rule    *Rule
}

type descriptorKind int

const (
	kindInvalid descriptorKind = iota
	kindBool
	kindText
	kindSpec
	kindFunc
	kindList
	kindPred
	kindRule
)

// Bool declares a constant predicate.
func Bool(v bool) Descriptor {
	return Descriptor{kind: kindBool, value: v}
}

// Text declares a backend spec in the form "backend[+driver][ op version]",
// e.g. "sqlite", "pg+psycopg2", "mysql >= 5.7".
func Text(s string) Descriptor {
	return Descriptor{kind: kindText, text: s}
}

// Spec declares a backend spec with an explicit operator and version tuples.
// This is the only form for the "in" and "between" operators.
func Spec(db string, op string, specs ...Version) Descriptor {
	return Descriptor{kind: kindSpec, backend: db, op: op, specs: specs}
}

// Func declares a user predicate over the context.
func Func(fn func(ctx *Context) bool) Descriptor {
	return Descriptor{kind: kindFunc, fn: fn}
}

// Nullary declares a context-independent user predicate.
func Nullary(fn func() bool) Descriptor {
	return Descriptor{kind: kindFunc, fn: func(*Context) bool { return fn() }}
}

// List folds descriptors into a disjunction.
func List(items ...Descriptor) Descriptor {
	return Descriptor{kind: kindList, items: items}
}

// Pred wraps an already built predicate.
func Pred(p Predicate) Descriptor {
	return Descriptor{kind: kindPred, pred: p}
}

// Enabled declares a predicate that holds when the given rule is enabled for
// the context under evaluation.
func Enabled(r *Rule) Descriptor {
	return Descriptor{kind: kindRule, rule: r}
}

// grammar: backend token (word chars and '+'), optional operator, optional
// dotted integer version
var textSpec = regexp.MustCompile(`^([+\w]+)\s*(?:(>=|==|!=|<=|<|>)\s*([\d.]+))?$`)

func parseTextSpec(s string) (*SpecPredicate, error) {
	tokens := textSpec.FindStringSubmatch(s)
	if tokens == nil {
		return nil, fmt.Errorf("couldn't locate a backend name in spec %q", s)
	}
	db, op := tokens[1], tokens[2]
	if tokens[3] == "" {
		return NewSpecPredicate(db, op)
	}
	spec, err := ParseVersion(tokens[3])
	if err != nil {
		return nil, fmt.Errorf("spec %q: %w", s, err)
	}
	return NewSpecPredicate(db, op, spec)
}

// Resolve builds the Predicate a descriptor stands for. The description, when
// non-empty, replaces the predicate's generated one. Malformed descriptors are
// construction-time failures and never surface during evaluation.
func (d Descriptor) Resolve(description string) (Predicate, error) {
	switch d.kind {
	case kindBool:
		return NewBooleanPredicate(d.value, description), nil
	case kindText:
		p, err := parseTextSpec(d.text)
		if err != nil {
			return nil, err
		}
		p.description = description
		return p, nil
	case kindSpec:
		p, err := NewSpecPredicate(d.backend, d.op, d.specs...)
		if err != nil {
			return nil, err
		}
		p.description = description
		return p, nil
	case kindFunc:
		if d.fn == nil {
			return nil, fmt.Errorf("nil predicate function")
		}
		return NewFuncPredicate(d.fn, description), nil
	case kindList:
		if len(d.items) == 0 {
			return nil, fmt.Errorf("empty descriptor list")
		}
		preds := make([]Predicate, 0, len(d.items))
		for _, item := range d.items {
			p, err := item.Resolve("")
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
		}
		return NewOrPredicate(preds, description), nil
	case kindPred:
		if d.pred == nil {
			return nil, fmt.Errorf("nil predicate")
		}
		if description != "" {
			describeWith(d.pred, description)
		}
		return d.pred, nil
	case kindRule:
		if d.rule == nil {
			return nil, fmt.Errorf("nil rule")
		}
		rule := d.rule
		if description == "" {
			description = "rule enabled"
		}
		return NewFuncPredicate(rule.EnabledFor, description), nil
	}
	// the zero Descriptor lands here
	return nil, fmt.Errorf("unknown descriptor kind: %d", d.kind)
}

// describeWith sets the description on predicates that carry one, only when
// it is still unset.
func describeWith(p Predicate, description string) {
	switch t := p.(type) {
	case *BooleanPredicate:
		if t.description == "" {
			t.description = description
		}
	case *SpecPredicate:
		if t.description == "" {
			t.description = description
		}
	case *FuncPredicate:
		if t.description == "" {
			t.description = description
		}
	case *NotPredicate:
		if t.description == "" {
			t.description = description
		}
	case *OrPredicate:
		if t.description == "" {
			t.description = description
		}
	}
}
