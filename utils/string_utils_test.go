package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"supermarkt/utils"
)

func TestTruncate(t *testing.T) {
	if got := utils.Truncate("AH Halfvolle melk", 5); got != "AH Ha" {
		t.Fatalf("expected 'AH Ha', got %q", got)
	}
	if got := utils.Truncate("crème fraîche", 5); got != "crème" {
		t.Fatalf("expected rune-safe cut, got %q", got)
	}
	if got := utils.Truncate("kaas", 40); got != "kaas" {
		t.Fatalf("expected short string unchanged, got %q", got)
	}
	if got := utils.Truncate("kaas", 0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "EUR 1.29", utils.FormatEUR(decimal.RequireFromString("1.29")))
	assert.Equal(t, "EUR 2.50", utils.FormatEUR(decimal.RequireFromString("2.5")))
	assert.Equal(t, "EUR 0.00", utils.FormatEUR(decimal.Zero))
}

func TestNormalizeList(t *testing.T) {
	got := utils.NormalizeList([]string{" AH", "jumbo", "", "ah", "Lidl "})
	assert.Equal(t, []string{"ah", "jumbo", "lidl"}, got)
	assert.Empty(t, utils.NormalizeList(nil))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, utils.SplitList("  "))
	assert.Equal(t, []string{"ah", "jumbo"}, utils.SplitList("ah,jumbo"))
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 20, utils.ParseLimit("", 20, 100))
	assert.Equal(t, 20, utils.ParseLimit("abc", 20, 100))
	assert.Equal(t, 20, utils.ParseLimit("-3", 20, 100))
	assert.Equal(t, 7, utils.ParseLimit("7", 20, 100))
	assert.Equal(t, 100, utils.ParseLimit("5000", 20, 100))
}
