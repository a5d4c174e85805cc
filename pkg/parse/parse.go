package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVersion parses a dotted integer version string ("9.5.1") into its
// ordered parts. Empty segments and non-numeric segments are errors.
func ParseVersion(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty version string")
	}
	segs := strings.Split(s, ".")
	parts := make([]int, 0, len(segs))
	for _, seg := range segs {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("invalid version segment %q in %q", seg, s)
		}
		parts = append(parts, n)
	}
	return parts, nil
}

// ParseList splits a comma-separated string into trimmed, non-empty items.
func ParseList(s string) []string {
	res := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}
