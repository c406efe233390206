package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// FormatEUR renders an amount the way the reports print it, e.g. "EUR 1.29".
func FormatEUR(d decimal.Decimal) string {
	return "EUR " + d.StringFixed(2)
}

// NormalizeList lower-cases and trims codes such as stores or categories, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeList(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// SplitList parses a comma separated query value such as "ah,jumbo".
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
