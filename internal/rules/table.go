// Package rules holds the jurisdiction NIL rule table. The table hands out
// immutable snapshots: readers never observe a partial reload, and a rule
// value handed to a caller is never mutated afterwards.
package rules

import (
	"strings"
	"sync/atomic"

	"github.com/sells-group/nil-compliance/internal/model"
)

// snapshot is one immutable generation of the rule set.
type snapshot struct {
	byCode   map[string]model.StateRule
	fallback model.StateRule
}

// Table is a concurrency-safe view over jurisdiction rules. Lookups read the
// current snapshot through an atomic pointer; Replace swaps the whole
// snapshot in one step.
type Table struct {
	cur atomic.Pointer[snapshot]
}

// New builds a table from the given rules. A rule with code "default" (or an
// empty code) becomes the fallback for unknown jurisdictions; when none is
// provided a permissive 7-day default is used.
func New(list []model.StateRule) *Table {
	t := &Table{}
	t.Replace(list)
	return t
}

// Replace atomically swaps the rule set. In-flight lookups finish against
// the old snapshot.
func (t *Table) Replace(list []model.StateRule) {
	s := &snapshot{
		byCode:   make(map[string]model.StateRule, len(list)),
		fallback: defaultRule(),
	}
	for _, r := range list {
		code := normalizeCode(r.Code)
		if code == "" || code == "DEFAULT" {
			r.Code = "default"
			s.fallback = r
			continue
		}
		r.Code = code
		s.byCode[code] = r
	}
	t.cur.Store(s)
}

// Lookup returns the rule for a jurisdiction code, falling back to the
// default rule for unknown codes. The second return reports whether the code
// matched an explicit rule.
func (t *Table) Lookup(code string) (model.StateRule, bool) {
	s := t.cur.Load()
	if r, ok := s.byCode[normalizeCode(code)]; ok {
		return r, true
	}
	return s.fallback, false
}

// All returns every explicit rule plus the fallback, for listing.
func (t *Table) All() []model.StateRule {
	s := t.cur.Load()
	out := make([]model.StateRule, 0, len(s.byCode)+1)
	for _, r := range s.byCode {
		out = append(out, r)
	}
	out = append(out, s.fallback)
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func defaultRule() model.StateRule {
	return model.StateRule{
		Code:                   "default",
		Name:                   "Default",
		NILPermitted:           true,
		DisclosureDeadlineDays: 7,
	}
}
