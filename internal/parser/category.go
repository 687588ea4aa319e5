package parser

import "strings"

// Expense categories form a closed set; every parse resolves to exactly
// one of them, with CategoryOther as the default.
const (
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryUtilities      = "Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryOther          = "Other"
)

type categoryRule struct {
	name     string
	keywords []string
}

// categoryRules is evaluated in declaration order; the first category
// with a keyword hit wins, which makes classification deterministic for
// inputs that mention keywords from several categories.
var categoryRules = []categoryRule{
	{CategoryFood, []string{
		"coffee", "lunch", "dinner", "breakfast", "food", "restaurant", "cafe",
		"starbucks", "mcdonalds", "pizza", "burger", "sandwich", "meal", "eat",
		"grocery", "supermarket", "whole foods", "trader joes", "zara", "h&m",
	}},
	{CategoryTransportation, []string{
		"gas", "fuel", "uber", "lyft", "taxi", "transport", "bus", "train",
		"parking", "toll", "car", "vehicle", "shell", "exxon", "chevron",
	}},
	{CategoryShopping, []string{
		"shopping", "clothes", "amazon", "target", "walmart", "store", "buy",
		"purchase", "retail", "mall", "clothing", "shoes", "electronics",
	}},
	{CategoryEntertainment, []string{
		"movie", "entertainment", "game", "concert", "show", "theater",
		"netflix", "spotify", "music", "streaming", "fun", "leisure",
	}},
	{CategoryUtilities, []string{
		"electric", "electricity", "water", "internet", "phone", "utility",
		"bill", "cable", "wifi", "cellular", "power", "heating",
	}},
	{CategoryHealthcare, []string{
		"doctor", "hospital", "pharmacy", "medical", "health", "medicine",
		"prescription", "clinic", "dentist", "insurance",
	}},
}

// Categories returns the closed category set in declaration order, with
// the fallback category last.
func Categories() []string {
	names := make([]string, 0, len(categoryRules)+1)
	for _, rule := range categoryRules {
		names = append(names, rule.name)
	}
	return append(names, CategoryOther)
}

// ValidCategory reports whether name is a member of the closed set.
func ValidCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// Categorize classifies free text by substring keyword match. Keywords
// are matched literally, so "mcdonald's" with an apostrophe does not hit
// the "mcdonalds" keyword.
func Categorize(input string) string {
	text := strings.ToLower(input)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.name
			}
		}
	}
	return CategoryOther
}
