package rules

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/nil-compliance/internal/model"
)

// ruleFile is the on-disk shape of a jurisdiction rules override file.
type ruleFile struct {
	Rules []model.StateRule `yaml:"rules"`
}

// LoadFile reads a YAML rules file and returns its rules, normalized and
// validated. Category keys are lowercased; missing state names are derived
// from the code in title case.
func LoadFile(path string) ([]model.StateRule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rules: read %s", path)
	}
	var f ruleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrapf(err, "rules: parse %s", path)
	}
	if len(f.Rules) == 0 {
		return nil, eris.Errorf("rules: %s contains no rules", path)
	}

	titler := cases.Title(language.AmericanEnglish)
	seen := make(map[string]bool, len(f.Rules))
	for i := range f.Rules {
		r := &f.Rules[i]
		r.Code = normalizeCode(r.Code)
		if r.Code != "" && r.Code != "DEFAULT" && len(r.Code) != 2 {
			return nil, eris.Errorf("rules: %q is not a two-letter state code", r.Code)
		}
		if seen[r.Code] {
			return nil, eris.Errorf("rules: duplicate code %q", r.Code)
		}
		seen[r.Code] = true
		if r.DisclosureDeadlineDays < 0 {
			return nil, eris.Errorf("rules: %s has negative disclosure deadline", r.Code)
		}
		if r.Name == "" {
			r.Name = titler.String(strings.ToLower(r.Code))
		}
		for j, c := range r.ProhibitedCategories {
			r.ProhibitedCategories[j] = strings.ToLower(strings.TrimSpace(c))
		}
	}
	return f.Rules, nil
}
