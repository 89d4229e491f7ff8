// Package issues turns dimension results into the actionable findings shown
// to athletes. Issues are a pure derivation of the latest scoring pass and
// are replaced wholesale every time a deal is rescored.
package issues

import (
	"sort"

	"github.com/sells-group/nil-compliance/internal/model"
)

// Generate emits one issue per violated reason code on every dimension whose
// status is not good. Dimensions at good carry informational reason codes
// only; those never become issues.
//
// Ordering is deterministic: critical before warning before info, ties broken
// by the fixed dimension declaration order, then by reason code order within
// a dimension.
func Generate(set model.DimensionSet) []model.Issue {
	var out []model.Issue
	dimRank := make(map[model.DimensionKey]int, 6)
	for i, k := range model.DimensionKeys() {
		dimRank[k] = i
	}

	for _, r := range set.All() {
		if r.Status == model.DimensionGood {
			continue
		}
		for _, code := range r.ReasonCodes {
			e := lookup(code, r.Status)
			out = append(out, model.Issue{
				Dimension:   r.Key,
				ReasonCode:  code,
				Severity:    e.Severity,
				Title:       e.Title,
				Description: e.Description,
				Action:      e.Action,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity.Rank() != out[j].Severity.Rank() {
			return out[i].Severity.Rank() < out[j].Severity.Rank()
		}
		return dimRank[out[i].Dimension] < dimRank[out[j].Dimension]
	})
	return out
}

// HasCritical reports whether any issue in the list is critical severity.
func HasCritical(list []model.Issue) bool {
	for _, is := range list {
		if is.Severity == model.SeverityCritical {
			return true
		}
	}
	return false
}
