package ingredient

import "strings"

// unitAliases folds spellings of the same unit onto one symbol. Units are
// never converted into each other; "cup" and "ml" stay apart.
var unitAliases = map[string]string{
	"tsp": "tsp", "tsps": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tbsps": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp", "tbs": "tbsp", "tbl": "tbsp",
	"cup": "cup", "cups": "cup",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"fl-oz": "fl-oz", "floz": "fl-oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"g": "g", "gram": "g", "grams": "g", "gr": "g",
	"kg": "kg", "kilogram": "kg", "kilograms": "kg", "kgs": "kg",
	"mg": "mg", "milligram": "mg", "milligrams": "mg",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"slice": "slice", "slices": "slice",
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece",
	"bunch": "bunch", "bunches": "bunch",
	"stick": "stick", "sticks": "stick",
	"package": "package", "packages": "package", "pkg": "package",
	"quart": "qt", "quarts": "qt", "qt": "qt",
	"pint": "pt", "pints": "pt", "pt": "pt",
	"gallon": "gal", "gallons": "gal", "gal": "gal",
}

// NormalizeUnit returns the canonical symbol for a unit spelling. The
// comparison ignores case and a trailing period ("Tbsp." is "tbsp").
// Unknown units are returned lowercased and otherwise unchanged.
func NormalizeUnit(unit string) string {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), ".")
	if canonical, ok := unitAliases[key]; ok {
		return canonical
	}
	return key
}
