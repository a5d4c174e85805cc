// $ go test -v pkg/parse/*.go

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("9.5.1")
	assert.NoError(t, err)
	assert.Equal(t, []int{9, 5, 1}, v)

	v, err = ParseVersion("10")
	assert.NoError(t, err)
	assert.Equal(t, []int{10}, v)

	v, err = ParseVersion(" 5.7 ")
	assert.NoError(t, err)
	assert.Equal(t, []int{5, 7}, v)

	_, err = ParseVersion("")
	assert.Error(t, err)

	_, err = ParseVersion("9..5")
	assert.Error(t, err)

	_, err = ParseVersion("9.x")
	assert.Error(t, err)
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, ParseList("a, b"))
	assert.Equal(t, []string{"slow"}, ParseList("slow,"))
	assert.Empty(t, ParseList(""))
	assert.Empty(t, ParseList(" , "))
}
