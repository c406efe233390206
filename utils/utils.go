package utils

import "strconv"

// ParseLimit reads a result limit from a query value. Missing or unparsable
// values give def; values are clamped to [1, max].
func ParseLimit(raw string, def, max int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		limit = def // Default limit
	}
	if limit > max {
		limit = max
	}
	return limit
}
