package exclusions

import (
	"fmt"
	"strings"
)

// Predicate is a pure boolean test over a Context. Evaluate must not mutate
// the context or keep evaluation history. Describe renders a diagnostic
// string and never affects control flow.
type Predicate interface {
	Evaluate(ctx *Context) bool
	Describe(ctx *Context, negate bool) string
}

// boolean

type BooleanPredicate struct {
	value       bool
	description string
}

func NewBooleanPredicate(value bool, description string) *BooleanPredicate {
	if description == "" {
		description = fmt.Sprintf("boolean %v", value)
	}
	return &BooleanPredicate{value: value, description: description}
}

func (p *BooleanPredicate) Evaluate(ctx *Context) bool {
	return p.value
}

func (p *BooleanPredicate) Describe(ctx *Context, negate bool) string {
	return p.description
}

// spec

// SpecPredicate matches a backend identifier, optionally narrowed by a driver
// sub-identifier ("pg+psycopg2") or by a version operator ("pg >= 9.5").
// Driver and operator constraints are mutually exclusive.
type SpecPredicate struct {
	backend     string
	driver      string
	op          string
	specs       []Version
	description string
}

func NewSpecPredicate(db string, op string, specs ...Version) (*SpecPredicate, error) {
	backend, driver := db, ""
	if i := strings.Index(db, "+"); i >= 0 {
		backend, driver = db[:i], db[i+1:]
	}
	if backend == "" {
		return nil, fmt.Errorf("no backend name in spec %q", db)
	}
	if op != "" {
		if driver != "" {
			return nil, fmt.Errorf("spec %q: driver matching cannot be combined with a version operator", db)
		}
		if !validOperator(op) {
			return nil, fmt.Errorf("unknown version operator %q", op)
		}
		switch op {
		case OP_IN:
			if len(specs) == 0 {
				return nil, fmt.Errorf("operator %q needs at least one version", op)
			}
		case OP_BETWEEN:
			if len(specs) != 2 {
				return nil, fmt.Errorf("operator %q needs exactly two versions, got %d", op, len(specs))
			}
		default:
			if len(specs) != 1 {
				return nil, fmt.Errorf("operator %q needs exactly one version, got %d", op, len(specs))
			}
		}
	} else if len(specs) > 0 {
		return nil, fmt.Errorf("version %s given without an operator", specs[0])
	}
	return &SpecPredicate{backend: backend, driver: driver, op: op, specs: specs}, nil
}

func (p *SpecPredicate) Evaluate(ctx *Context) bool {
	if ctx == nil {
		return false
	}
	if ctx.Backend() != p.backend {
		return false
	}
	if p.driver != "" && ctx.Driver() != p.driver {
		return false
	}
	if p.op == "" {
		return true
	}
	return compareVersion(p.op, ctx.Version(), p.specs)
}

func (p *SpecPredicate) Describe(ctx *Context, negate bool) string {
	if p.description != "" {
		return p.description
	}
	db := p.backend
	if p.driver != "" {
		db = p.backend + "+" + p.driver
	}
	var s string
	if p.op == "" {
		s = db
	} else {
		s = fmt.Sprintf("%s %s %s", db, p.op, versionsString(p.specs))
	}
	if negate {
		return "not " + s
	}
	return s
}

func versionsString(specs []Version) string {
	segs := make([]string, len(specs))
	for i, v := range specs {
		segs[i] = v.String()
	}
	return strings.Join(segs, ",")
}

// func

type FuncPredicate struct {
	fn          func(ctx *Context) bool
	description string
}

func NewFuncPredicate(fn func(ctx *Context) bool, description string) *FuncPredicate {
	return &FuncPredicate{fn: fn, description: description}
}

// NewNullaryFuncPredicate wraps a context-independent check.
func NewNullaryFuncPredicate(fn func() bool, description string) *FuncPredicate {
	return NewFuncPredicate(func(*Context) bool { return fn() }, description)
}

func (p *FuncPredicate) Evaluate(ctx *Context) bool {
	return p.fn(ctx)
}

// Describe returns the stated description regardless of negation; a function
// body cannot be rendered inverted the way a spec can.
func (p *FuncPredicate) Describe(ctx *Context, negate bool) string {
	if p.description != "" {
		return p.description
	}
	return "custom function"
}

// not

type NotPredicate struct {
	predicate   Predicate
	description string
}

func NewNotPredicate(predicate Predicate, description string) *NotPredicate {
	return &NotPredicate{predicate: predicate, description: description}
}

func (p *NotPredicate) Evaluate(ctx *Context) bool {
	return !p.predicate.Evaluate(ctx)
}

func (p *NotPredicate) Describe(ctx *Context, negate bool) string {
	if p.description != "" {
		return p.description
	}
	return p.predicate.Describe(ctx, !negate)
}

// or

// OrPredicate matches when any member matches, evaluated in order with
// short-circuiting. The negated description renders as a conjunction of the
// negated member descriptions (De Morgan).
type OrPredicate struct {
	predicates  []Predicate
	description string
}

func NewOrPredicate(predicates []Predicate, description string) *OrPredicate {
	return &OrPredicate{predicates: predicates, description: description}
}

func (p *OrPredicate) Evaluate(ctx *Context) bool {
	for _, pred := range p.predicates {
		if pred.Evaluate(ctx) {
			return true
		}
	}
	return false
}

func (p *OrPredicate) Describe(ctx *Context, negate bool) string {
	if negate {
		if p.description != "" {
			return "Not " + p.description
		}
		return p.joinDescriptions(ctx, true, " and ")
	}
	if p.description != "" {
		return p.description
	}
	return p.joinDescriptions(ctx, false, " or ")
}

func (p *OrPredicate) joinDescriptions(ctx *Context, negate bool, conjunction string) string {
	segs := make([]string, len(p.predicates))
	for i, pred := range p.predicates {
		segs[i] = pred.Describe(ctx, negate)
	}
	return strings.Join(segs, conjunction)
}
