package server

import (
	"math"
	"strconv"
)

// parseIndex accepts only plain non-negative decimal numbers, so "-1", "+1"
// and "1x" do not match a task route at all. Digit strings too large for an
// int map to math.MaxInt, which no list can reach.
func parseIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return math.MaxInt, true
	}
	return i, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
