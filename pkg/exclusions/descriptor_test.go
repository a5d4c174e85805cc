// $ go test -v pkg/exclusions/*.go

package exclusions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextDescriptor(t *testing.T) {
	p, err := Text("sqlite").Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("sqlite", "")))

	p, err = Text("pg+psycopg2").Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("pg", "psycopg2")))
	assert.False(t, p.Evaluate(NewContext("pg", "pgx")))

	p, err = Text("mysql >= 5.7").Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("mysql", "", 8)))
	assert.False(t, p.Evaluate(NewContext("mysql", "", 5, 6)))

	p, err = Text("pg<9.0").Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("pg", "", 8, 4)))
}

func TestTextDescriptorErrors(t *testing.T) {
	_, err := Text("").Resolve("")
	assert.Error(t, err)

	_, err = Text("pg >=").Resolve("")
	assert.Error(t, err)

	_, err = Text("pg 9.0").Resolve("")
	assert.Error(t, err)

	_, err = Text("pg ~= 9.0").Resolve("")
	assert.Error(t, err)

	_, err = Text("pg+psycopg2 >= 9.0").Resolve("")
	assert.Error(t, err)

	_, err = Text("pg >= 9..0").Resolve("")
	assert.Error(t, err)
}

func TestBoolAndFuncDescriptors(t *testing.T) {
	p, err := Bool(true).Resolve("always")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(nil))
	assert.Equal(t, "always", p.Describe(nil, false))

	p, err = Func(func(ctx *Context) bool { return ctx.Backend() == "pg" }).Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("pg", "")))

	p, err = Nullary(func() bool { return true }).Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(nil))

	_, err = Func(nil).Resolve("")
	assert.Error(t, err)
}

func TestSpecDescriptor(t *testing.T) {
	p, err := Spec("pg", OP_BETWEEN, V(9), V(10)).Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("pg", "", 9, 5)))

	_, err = Spec("pg", OP_BETWEEN, V(9)).Resolve("")
	assert.Error(t, err)
}

func TestListDescriptor(t *testing.T) {
	p, err := List(Text("sqlite"), Text("mysql")).Resolve("")
	require.NoError(t, err)
	assert.True(t, p.Evaluate(NewContext("mysql", "")))
	assert.False(t, p.Evaluate(NewContext("pg", "")))

	_, err = List().Resolve("")
	assert.Error(t, err)

	// a malformed member surfaces at construction
	_, err = List(Text("sqlite"), Text("pg ~= 9")).Resolve("")
	assert.Error(t, err)
}

func TestPredAndEnabledDescriptors(t *testing.T) {
	inner := NewBooleanPredicate(true, "")
	p, err := Pred(inner).Resolve("")
	require.NoError(t, err)
	assert.Same(t, inner, p.(*BooleanPredicate))

	_, err = Pred(nil).Resolve("")
	assert.Error(t, err)

	rule := Skip("sqlite", "file db")
	p, err = Enabled(rule).Resolve("")
	require.NoError(t, err)
	assert.False(t, p.Evaluate(NewContext("sqlite", "")))
	assert.True(t, p.Evaluate(NewContext("pg", "")))

	_, err = Enabled(nil).Resolve("")
	assert.Error(t, err)
}

func TestZeroDescriptor(t *testing.T) {
	_, err := (Descriptor{}).Resolve("")
	assert.Error(t, err)
}

func TestResolveDescription(t *testing.T) {
	p, err := Text("sqlite").Resolve("no savepoints")
	require.NoError(t, err)
	assert.Equal(t, "no savepoints", p.Describe(nil, false))
}
