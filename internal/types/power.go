// Package types defines the data structures shared across the power card pipeline.
package types

// UsageCategory classifies how often a power can be used. The stylesheet keys
// its header colors off these values.
type UsageCategory string

// Usage categories with dedicated styling in the printable sheet
const (
	UsageAtWill    UsageCategory = "At-Will"
	UsageEncounter UsageCategory = "Encounter"
	UsageDaily     UsageCategory = "Daily"
)

// KnownUsageCategories lists the categories the stylesheet colors, in display order.
var KnownUsageCategories = []UsageCategory{UsageAtWill, UsageEncounter, UsageDaily}

// IsStyled reports whether the category has a color rule in the stylesheet.
func (u UsageCategory) IsStyled() bool {
	for _, known := range KnownUsageCategories {
		if u == known {
			return true
		}
	}
	return false
}

// PowerRecord is one row of the powers store.
type PowerRecord struct {
	Name   string `json:"name"`   // Power name, also the lookup key
	Usage  string `json:"usage"`  // Usage category, e.g. "Encounter"
	Markup string `json:"markup"` // Raw HTML fragment containing the sentinel element
}

// Category returns the record's usage as a UsageCategory.
func (p PowerRecord) Category() UsageCategory {
	return UsageCategory(p.Usage)
}
