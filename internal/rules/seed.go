package rules

import "github.com/sells-group/nil-compliance/internal/model"

// Seed returns the built-in jurisdiction rules. States not listed here fall
// through to the default rule. Prohibited categories use normalized keys
// matching the brand-safety scorer.
func Seed() []model.StateRule {
	return []model.StateRule{
		{
			Code:                   "CA",
			Name:                   "California",
			NILPermitted:           true,
			DisclosureDeadlineDays: 7,
			ProhibitedCategories:   []string{"alcohol", "tobacco", "gambling", "cannabis"},
		},
		{
			Code:                   "TX",
			Name:                   "Texas",
			NILPermitted:           true,
			DisclosureDeadlineDays: 7,
			ProhibitedCategories:   []string{"alcohol", "tobacco", "gambling"},
		},
		{
			Code:                   "FL",
			Name:                   "Florida",
			NILPermitted:           true,
			DisclosureDeadlineDays: 3,
			ProhibitedCategories:   []string{"alcohol", "tobacco", "gambling", "sports_betting"},
		},
		{
			Code:                   "KY",
			Name:                   "Kentucky",
			NILPermitted:           true,
			DisclosureDeadlineDays: 5,
			ProhibitedCategories:   []string{"alcohol", "tobacco", "gambling"},
		},
		{
			Code:                   "AL",
			Name:                   "Alabama",
			NILPermitted:           true,
			DisclosureDeadlineDays: 7,
			ProhibitedCategories:   []string{"alcohol", "tobacco", "gambling", "cannabis"},
		},
	}
}
