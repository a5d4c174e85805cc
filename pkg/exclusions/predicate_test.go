// $ go test -v pkg/exclusions/*.go

package exclusions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanPredicate(t *testing.T) {
	ctx := NewContext("pg", "")

	p := NewBooleanPredicate(true, "")
	assert.True(t, p.Evaluate(ctx))
	assert.Equal(t, "boolean true", p.Describe(ctx, false))

	p = NewBooleanPredicate(false, "marked as skip")
	assert.False(t, p.Evaluate(ctx))
	assert.Equal(t, "marked as skip", p.Describe(ctx, false))
}

func TestSpecPredicateBackend(t *testing.T) {
	p, err := NewSpecPredicate("pg", "")
	require.NoError(t, err)

	assert.True(t, p.Evaluate(NewContext("pg", "pgx")))
	assert.False(t, p.Evaluate(NewContext("mysql", "")))
	assert.False(t, p.Evaluate(nil))
	assert.Equal(t, "pg", p.Describe(nil, false))
	assert.Equal(t, "not pg", p.Describe(nil, true))
}

func TestSpecPredicateDriver(t *testing.T) {
	p, err := NewSpecPredicate("pg+psycopg2", "")
	require.NoError(t, err)

	assert.True(t, p.Evaluate(NewContext("pg", "psycopg2")))
	assert.False(t, p.Evaluate(NewContext("pg", "pgx")))
	assert.False(t, p.Evaluate(NewContext("mysql", "psycopg2")))
	assert.Equal(t, "pg+psycopg2", p.Describe(nil, false))
}

func TestSpecPredicateVersion(t *testing.T) {
	p, err := NewSpecPredicate("pg", OP_GREATER_OR_EQUAL, V(9, 0))
	require.NoError(t, err)

	assert.True(t, p.Evaluate(NewContext("pg", "", 9, 1, 0)))
	assert.False(t, p.Evaluate(NewContext("pg", "", 8, 4)))
	// backend mismatch wins over any version
	assert.False(t, p.Evaluate(NewContext("mysql", "", 99, 0)))
	assert.Equal(t, "pg >= 9.0", p.Describe(nil, false))
	assert.Equal(t, "not pg >= 9.0", p.Describe(nil, true))
}

func TestSpecPredicateBetweenAndIn(t *testing.T) {
	p, err := NewSpecPredicate("mysql", OP_BETWEEN, V(5, 6), V(5, 7))
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("mysql", "", 5, 6, 30)))
	assert.False(t, p.Evaluate(NewContext("mysql", "", 8)))
	assert.Equal(t, "mysql between 5.6,5.7", p.Describe(nil, false))

	p, err = NewSpecPredicate("mysql", OP_IN, V(5, 6), V(8))
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("mysql", "", 8)))
	assert.False(t, p.Evaluate(NewContext("mysql", "", 5, 7)))
}

func TestSpecPredicateConstructionErrors(t *testing.T) {
	// driver and operator are mutually exclusive concerns
	_, err := NewSpecPredicate("pg+psycopg2", OP_GREATER_OR_EQUAL, V(9))
	assert.Error(t, err)

	_, err = NewSpecPredicate("pg", "~=", V(9))
	assert.Error(t, err)

	_, err = NewSpecPredicate("pg", OP_BETWEEN, V(9))
	assert.Error(t, err)

	_, err = NewSpecPredicate("pg", OP_IN)
	assert.Error(t, err)

	_, err = NewSpecPredicate("pg", OP_EQUAL, V(9), V(10))
	assert.Error(t, err)

	_, err = NewSpecPredicate("pg", "", V(9))
	assert.Error(t, err)

	_, err = NewSpecPredicate("+psycopg2", "")
	assert.Error(t, err)
}

func TestFuncPredicate(t *testing.T) {
	ctx := NewContext("pg", "")
	ctx.SetFact("supports.savepoints", true)

	p := NewFuncPredicate(func(c *Context) bool {
		return c.GetFact("supports.savepoints").Bool()
	}, "savepoint support")
	assert.True(t, p.Evaluate(ctx))
	// stated descriptions render the same under negation
	assert.Equal(t, "savepoint support", p.Describe(ctx, false))
	assert.Equal(t, "savepoint support", p.Describe(ctx, true))

	calls := 0
	n := NewNullaryFuncPredicate(func() bool {
		calls++
		return false
	}, "")
	assert.False(t, n.Evaluate(ctx))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "custom function", n.Describe(ctx, false))
	assert.Equal(t, "custom function", n.Describe(ctx, true))
}

func TestNotPredicate(t *testing.T) {
	ctx := NewContext("sqlite", "")
	inner, err := NewSpecPredicate("sqlite", "")
	require.NoError(t, err)

	p := NewNotPredicate(inner, "")
	assert.False(t, p.Evaluate(ctx))
	assert.True(t, p.Evaluate(NewContext("pg", "")))

	// negated rendering delegates to the wrapped predicate
	assert.Equal(t, "not sqlite", p.Describe(ctx, false))
	assert.Equal(t, "sqlite", p.Describe(ctx, true))

	// double negation restores the original behavior
	d := NewNotPredicate(p, "")
	assert.Equal(t, inner.Evaluate(ctx), d.Evaluate(ctx))
	assert.Equal(t, "sqlite", d.Describe(ctx, false))
}

func TestOrPredicate(t *testing.T) {
	sqlite, err := NewSpecPredicate("sqlite", "")
	require.NoError(t, err)
	mysql, err := NewSpecPredicate("mysql", "")
	require.NoError(t, err)

	p := NewOrPredicate([]Predicate{sqlite, mysql}, "")

	assert.True(t, p.Evaluate(NewContext("sqlite", "")))
	assert.True(t, p.Evaluate(NewContext("mysql", "")))
	assert.False(t, p.Evaluate(NewContext("pg", "")))

	assert.Equal(t, "sqlite or mysql", p.Describe(nil, false))
	// De Morgan: the negation reads as a conjunction of negations
	assert.Equal(t, "not sqlite and not mysql", p.Describe(nil, true))

	described := NewOrPredicate([]Predicate{sqlite, mysql}, "file-backed databases")
	assert.Equal(t, "file-backed databases", described.Describe(nil, false))
	assert.Equal(t, "Not file-backed databases", described.Describe(nil, true))
}

func TestOrPredicateShortCircuit(t *testing.T) {
	calls := 0
	counter := NewFuncPredicate(func(*Context) bool {
		calls++
		return false
	}, "")

	p := NewOrPredicate([]Predicate{NewBooleanPredicate(true, ""), counter}, "")
	assert.True(t, p.Evaluate(NewContext("pg", "")))
	assert.Equal(t, 0, calls)
}
