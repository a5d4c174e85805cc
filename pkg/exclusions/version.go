package exclusions

import (
	"fmt"
	"strings"

	"github.com/lunarbay/proviso/pkg/parse"
)

const (
	OP_LESS             string = "<"
	OP_GREATER          string = ">"
	OP_EQUAL            string = "=="
	OP_NOT_EQUAL        string = "!="
	OP_LESS_OR_EQUAL    string = "<="
	OP_GREATER_OR_EQUAL string = ">="
	OP_IN               string = "in"
	OP_BETWEEN          string = "between"
)

// Version is an ordered backend version tuple, e.g. 9.5.1 -> {9, 5, 1}.
type Version []int

func V(parts ...int) Version {
	return Version(parts)
}

func ParseVersion(s string) (Version, error) {
	parts, err := parse.ParseVersion(s)
	if err != nil {
		return nil, err
	}
	return Version(parts), nil
}

// Compare orders versions the way ordered tuples compare: element by element,
// a missing element sorts before any present one. Returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	for i := 0; i < len(v) && i < len(other); i++ {
		if v[i] < other[i] {
			return -1
		}
		if v[i] > other[i] {
			return 1
		}
	}
	if len(v) < len(other) {
		return -1
	}
	if len(v) > len(other) {
		return 1
	}
	return 0
}

func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

func (v Version) String() string {
	segs := make([]string, len(v))
	for i, n := range v {
		segs[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(segs, ".")
}

func validOperator(op string) bool {
	switch op {
	case OP_LESS, OP_GREATER, OP_EQUAL, OP_NOT_EQUAL,
		OP_LESS_OR_EQUAL, OP_GREATER_OR_EQUAL, OP_IN, OP_BETWEEN:
		return true
	}
	return false
}

// compareVersion applies op to (actual, specs). Spec arity is validated at
// predicate construction, never here.
func compareVersion(op string, actual Version, specs []Version) bool {
	switch op {
	case OP_LESS:
		return actual.Compare(specs[0]) < 0
	case OP_GREATER:
		return actual.Compare(specs[0]) > 0
	case OP_EQUAL:
		return actual.Compare(specs[0]) == 0
	case OP_NOT_EQUAL:
		return actual.Compare(specs[0]) != 0
	case OP_LESS_OR_EQUAL:
		return actual.Compare(specs[0]) <= 0
	case OP_GREATER_OR_EQUAL:
		return actual.Compare(specs[0]) >= 0
	case OP_IN:
		for _, s := range specs {
			if actual.Compare(s) == 0 {
				return true
			}
		}
		return false
	case OP_BETWEEN:
		return actual.Compare(specs[0]) >= 0 && actual.Compare(specs[1]) <= 0
	}
	return false
}
