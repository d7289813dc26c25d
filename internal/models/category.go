package models

import "strings"

// Category is one value from the closed spending-category enumeration.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryIncome        Category = "Income"
	// CategoryOther is the catch-all. Anything outside the enumeration is
	// folded into it for display and aggregation.
	CategoryOther Category = "Other"
)

// AllCategories lists every known category in display order.
var AllCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryShopping,
	CategoryHealth,
	CategoryIncome,
	CategoryOther,
}

// Valid reports whether the category is part of the enumeration.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory maps a free-form category string onto the enumeration,
// case-insensitively. Unknown or empty values become the catch-all category.
func NormalizeCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	for _, known := range AllCategories {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return CategoryOther
}
