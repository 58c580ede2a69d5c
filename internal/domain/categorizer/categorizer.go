// Package categorizer assigns a spending/income category to a
// transaction from its free-text description.
//
// Categorization is an ordered keyword-substring scan, not NLP: the
// first rule whose keyword appears in the lowercased description wins,
// so table order resolves overlapping keywords ("uber eats" must be
// claimed by Food & Dining before "uber" reaches Transportation).
// Income keywords are always checked first so that "payment received
// from amazon" is income, not shopping.
package categorizer

import "strings"

// FallbackCategory is returned when no rule matches.
const FallbackCategory = "Other"

// IncomeCategory is the rule label given priority over all others.
const IncomeCategory = "Income"

// Rule maps a category label to the lowercase keyword substrings that
// select it.
type Rule struct {
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Table is an ordered list of rules. Order is part of the contract.
type Table []Rule

// Categorizer matches descriptions against a fixed rule table.
type Categorizer struct {
	table Table
}

// New creates a categorizer with the given table. A nil or empty table
// falls back to DefaultTable.
func New(table Table) *Categorizer {
	if len(table) == 0 {
		table = DefaultTable()
	}
	return &Categorizer{table: table}
}

// Categorize returns the category label for a description, or
// FallbackCategory when nothing matches.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return FallbackCategory
	}

	// Income signals take priority over merchant-name collisions.
	for _, rule := range c.table {
		if rule.Label != IncomeCategory {
			continue
		}
		if matchesAny(desc, rule.Keywords) {
			return rule.Label
		}
	}

	for _, rule := range c.table {
		if rule.Label == IncomeCategory {
			continue
		}
		if matchesAny(desc, rule.Keywords) {
			return rule.Label
		}
	}

	return FallbackCategory
}

// Labels returns the category labels in table order plus the fallback.
// Useful for building category pickers.
func (c *Categorizer) Labels() []string {
	labels := make([]string, 0, len(c.table)+1)
	for _, rule := range c.table {
		labels = append(labels, rule.Label)
	}
	return append(labels, FallbackCategory)
}

func matchesAny(desc string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
