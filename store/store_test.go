package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"supermarkt/models"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%halfvolle melk%", likePattern(" halfvolle melk "))
	assert.Equal(t, `%100\% sap%`, likePattern("100% sap"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\x%`, likePattern(`c:\x`))
	assert.Equal(t, "%%", likePattern(""))
}

func TestLikePatternsSkipsBlanks(t *testing.T) {
	assert.Equal(t, []string{"%shampoo%", "%gel%"}, likePatterns([]string{"shampoo", " ", "gel"}))
	assert.NotNil(t, likePatterns(nil))
}

func TestTextArrayNeverNil(t *testing.T) {
	assert.NotNil(t, textArray(nil))
	assert.Equal(t, []string{"ah"}, textArray([]string{"ah"}))
}

func TestDedupeProducts(t *testing.T) {
	p := func(name, price string) models.Product {
		return models.Product{Name: name, Price: decimal.RequireFromString(price)}
	}
	got := dedupeProducts([]models.Product{
		p("AH Melk", "1.09"),
		p("AH Melk", "0.99"),
		p("AH Gratis", "0"),
		p("", "1.00"),
		p("AH Boter", "2.49"),
	})
	if assert.Len(t, got, 2) {
		assert.Equal(t, "AH Melk", got[0].Name)
		assert.True(t, decimal.RequireFromString("1.09").Equal(got[0].Price))
		assert.Equal(t, "AH Boter", got[1].Name)
	}
}
