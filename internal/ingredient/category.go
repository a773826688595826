package ingredient

import "strings"

// Category is a shopping-department bucket.
type Category string

const (
	Produce     Category = "Produce"
	Dairy       Category = "Dairy"
	MeatSeafood Category = "Meat & Seafood"
	Pantry      Category = "Pantry"
	Frozen      Category = "Frozen"
	Other       Category = "Other"
)

type categoryKeywords struct {
	category Category
	keywords []string
}

// Checked in order; the first category with a matching keyword wins.
var categoryRules = []categoryKeywords{
	{Produce, []string{
		"onion", "garlic", "tomato", "lettuce", "carrot", "celery", "cucumber", "spinach",
		"herbs", "basil", "parsley", "cilantro", "thyme", "rosemary", "lemon", "lime",
		"apple", "banana", "berry", "fruit", "vegetable", "potato",
	}},
	{Dairy, []string{"milk", "cheese", "butter", "cream", "yogurt", "egg", "dairy"}},
	{MeatSeafood, []string{
		"chicken", "beef", "pork", "fish", "salmon", "shrimp", "turkey", "lamb",
		"meat", "seafood", "bacon", "sausage",
	}},
	{Pantry, []string{
		"flour", "sugar", "salt", "pepper", "oil", "vinegar", "sauce", "spice",
		"baking", "vanilla", "rice", "pasta", "bread", "cereal", "canned", "jar",
	}},
	{Frozen, []string{"frozen", "ice"}},
}

// Categories lists every category in shopping order.
func Categories() []Category {
	return []Category{Produce, Dairy, MeatSeafood, Pantry, Frozen, Other}
}

// Categorize assigns an ingredient name to a shopping department by keyword.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return Other
}

func categoryRank(c Category) int {
	for i, known := range Categories() {
		if known == c {
			return i
		}
	}
	return len(categoryRules) + 1
}
