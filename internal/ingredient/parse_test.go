package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amountOf(v float64) *float64 { return &v }

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ParsedIngredient
	}{
		{"whole number", "2 cups flour", ParsedIngredient{Amount: amountOf(2), Unit: "cups", Name: "flour"}},
		{"simple fraction", "1/2 cup sugar", ParsedIngredient{Amount: amountOf(0.5), Unit: "cup", Name: "sugar"}},
		{"mixed number", "1 1/2 cups milk", ParsedIngredient{Amount: amountOf(1.5), Unit: "cups", Name: "milk"}},
		{"decimal", "0.25 tsp baking soda", ParsedIngredient{Amount: amountOf(0.25), Unit: "tsp", Name: "baking soda"}},
		{"trailing dot", "2. tbsp oil", ParsedIngredient{Amount: amountOf(2), Unit: "tbsp", Name: "oil"}},
		{"multi word name", "3 tbsp extra virgin olive oil", ParsedIngredient{Amount: amountOf(3), Unit: "tbsp", Name: "extra virgin olive oil"}},
		{"collapses inner whitespace", "2  cups   chopped   onion ", ParsedIngredient{Amount: amountOf(2), Unit: "cups", Name: "chopped onion"}},
		{"single word after number is the name", "3 eggs", ParsedIngredient{Amount: amountOf(3), Name: "eggs"}},
		{"number only", "4", ParsedIngredient{Amount: amountOf(4)}},
		{"no amount", "salt", ParsedIngredient{Name: "salt"}},
		{"no amount multi word", "salt to taste", ParsedIngredient{Name: "salt to taste"}},
		{"leading whitespace", "   fresh basil leaves", ParsedIngredient{Name: "fresh basil leaves"}},
		{"zero denominator", "1/0 cup water", ParsedIngredient{Name: "1/0 cup water"}},
		{"zero denominator in mixed number", "2 3/0 cups water", ParsedIngredient{Name: "2 3/0 cups water"}},
		{"number glued to unit", "200g butter", ParsedIngredient{Amount: amountOf(200), Unit: "g", Name: "butter"}},
		{"number not at start", "pinch of 2 spices", ParsedIngredient{Name: "pinch of 2 spices"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			assert.Equal(t, tt.line, got.Original)
			assert.Equal(t, tt.want.Unit, got.Unit)
			assert.Equal(t, tt.want.Name, got.Name)
			if tt.want.Amount == nil {
				assert.Nil(t, got.Amount)
				assert.False(t, got.HasAmount())
				return
			}
			require.NotNil(t, got.Amount)
			assert.InDelta(t, *tt.want.Amount, *got.Amount, 1e-9)
		})
	}
}

func TestParseFractions(t *testing.T) {
	p := Parse("1 1/2 cups milk")
	require.NotNil(t, p.Amount)
	assert.Equal(t, 1.5, *p.Amount)

	p = Parse("3/4 tsp salt")
	require.NotNil(t, p.Amount)
	assert.Equal(t, 0.75, *p.Amount)
}

func TestParseNoAmountKeepsText(t *testing.T) {
	p := Parse("fresh basil leaves")
	assert.Nil(t, p.Amount)
	assert.Equal(t, "fresh basil leaves", p.Name)
	assert.Empty(t, p.Unit)
	assert.Equal(t, "fresh basil leaves", p.String())
}

func TestParsedIngredientString(t *testing.T) {
	assert.Equal(t, "1 1/2 cups milk", Parse("1 1/2 cups milk").String())
	assert.Equal(t, "1/2 cup sugar", Parse("0.5 cup sugar").String())
	assert.Equal(t, "3 eggs", Parse("3 eggs").String())
}
