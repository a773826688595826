package ingredient

import (
	"math"
	"strconv"
	"strings"
)

const fractionTolerance = 0.01

type cookingFraction struct {
	value float64
	text  string
}

var cookingFractions = []cookingFraction{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{0.33, "1/3"},
	{0.5, "1/2"},
	{0.67, "2/3"},
	{0.75, "3/4"},
}

// FormatAmount renders a quantity for people: whole numbers as integers,
// common cooking fractions as "1 1/2", anything else as a short decimal.
func FormatAmount(amount float64) string {
	if amount < 0 {
		s := FormatAmount(-amount)
		if s == "0" {
			return s
		}
		return "-" + s
	}
	if amount == math.Trunc(amount) {
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}

	whole := math.Floor(amount)
	frac := amount - whole
	for _, f := range cookingFractions {
		if math.Abs(frac-f.value) < fractionTolerance {
			if whole > 0 {
				return strconv.FormatFloat(whole, 'f', 0, 64) + " " + f.text
			}
			return f.text
		}
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func render(amount float64, unit, name string) string {
	s := FormatAmount(amount)
	if unit != "" {
		s += " " + unit
	}
	return strings.TrimSpace(s + " " + name)
}
