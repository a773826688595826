// Package ingredient parses free-text ingredient lines, scales and formats
// their quantities, and consolidates them into shopping-list items.
package ingredient

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ParsedIngredient is a single ingredient line split into amount, unit and name.
// Amount is nil when the line carries no leading quantity.
type ParsedIngredient struct {
	Amount   *float64 `json:"amount"`
	Unit     string   `json:"unit"`
	Name     string   `json:"name"`
	Original string   `json:"original"`
}

// HasAmount reports whether a leading quantity was found.
func (p ParsedIngredient) HasAmount() bool {
	return p.Amount != nil
}

// String renders the ingredient the same way a scaled ingredient is rendered.
func (p ParsedIngredient) String() string {
	if p.Amount == nil {
		return p.Original
	}
	return render(*p.Amount, p.Unit, p.Name)
}

// Alternatives are ordered so "1 1/2" is not read as "1".
var quantityPattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+\.?\d*)`)

// Parse splits an ingredient line into its quantity, unit and name.
//
// A line without a leading quantity becomes the name with an empty unit.
// When only one word follows the quantity ("3 eggs") that word is the name.
func Parse(line string) ParsedIngredient {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	noAmount := ParsedIngredient{Name: trimmed, Original: line}

	token := quantityPattern.FindString(trimmed)
	if token == "" {
		return noAmount
	}
	amount, ok := parseQuantity(token)
	if !ok {
		return noAmount
	}

	parsed := ParsedIngredient{Amount: &amount, Original: line}
	words := strings.Fields(trimmed[len(token):])
	switch len(words) {
	case 0:
	case 1:
		parsed.Name = words[0]
	default:
		parsed.Unit = words[0]
		parsed.Name = strings.Join(words[1:], " ")
	}
	return parsed
}

// parseQuantity evaluates a matched quantity token. Tokens with a zero
// denominator are rejected.
func parseQuantity(token string) (float64, bool) {
	fields := strings.Fields(token)
	if len(fields) == 2 {
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(fields[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}

	if strings.Contains(token, "/") {
		return parseFraction(token)
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(token, "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFraction(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}
