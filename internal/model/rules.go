package model

// StateRule is the jurisdiction-specific NIL rule set. Rules are read-only
// reference data: the engine consumes immutable snapshots and never mutates
// a rule in place.
type StateRule struct {
	Code                   string   `json:"code" yaml:"code"`
	Name                   string   `json:"name" yaml:"name"`
	NILPermitted           bool     `json:"nil_permitted" yaml:"nil_permitted"`
	DisclosureDeadlineDays int      `json:"disclosure_deadline_days" yaml:"disclosure_deadline_days"`
	ProhibitedCategories   []string `json:"prohibited_categories" yaml:"prohibited_categories"`
}

// ProhibitsCategory reports whether the given deal/brand category is banned
// in this jurisdiction. Matching is exact on normalized category keys.
func (r StateRule) ProhibitsCategory(category string) bool {
	for _, c := range r.ProhibitedCategories {
		if c == category {
			return true
		}
	}
	return false
}
