package utils

import (
	"strconv"
	"strings"
)

// ParseIntOrDefault parses s as a base-10 integer, returning fallback when s is
// empty or malformed. Used for form fields where a bad value must not abort the
// submission (suit counts, prices).
func ParseIntOrDefault(s string, fallback int) int {
	num, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return num
}

// ParseInt64OrDefault is ParseIntOrDefault for 64-bit money amounts.
func ParseInt64OrDefault(s string, fallback int64) int64 {
	num, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fallback
	}
	return num
}
