package model

// DimensionKey identifies one of the six compliance dimensions.
type DimensionKey string

const (
	DimensionPolicyFit       DimensionKey = "policy_fit"
	DimensionDocumentHygiene DimensionKey = "document_hygiene"
	DimensionFMVVerification DimensionKey = "fmv_verification"
	DimensionTaxReadiness    DimensionKey = "tax_readiness"
	DimensionBrandSafety     DimensionKey = "brand_safety"
	DimensionGuardianConsent DimensionKey = "guardian_consent"
)

// DimensionKeys returns all six dimension keys in fixed declaration order.
// Issue ordering and reporting rely on this order being stable.
func DimensionKeys() [6]DimensionKey {
	return [6]DimensionKey{
		DimensionPolicyFit,
		DimensionDocumentHygiene,
		DimensionFMVVerification,
		DimensionTaxReadiness,
		DimensionBrandSafety,
		DimensionGuardianConsent,
	}
}

// DimensionStatus is the per-dimension traffic light derived from the score.
type DimensionStatus string

const (
	DimensionGood     DimensionStatus = "good"
	DimensionWarning  DimensionStatus = "warning"
	DimensionCritical DimensionStatus = "critical"
)

// DimensionStatusFromScore derives the status for a 0-100 dimension score.
func DimensionStatusFromScore(score int) DimensionStatus {
	switch {
	case score >= 80:
		return DimensionGood
	case score >= 50:
		return DimensionWarning
	default:
		return DimensionCritical
	}
}

// DimensionResult is the scored outcome for a single dimension.
type DimensionResult struct {
	Key             DimensionKey    `json:"key"`
	Score           int             `json:"score"`
	Status          DimensionStatus `json:"status"`
	Weight          float64         `json:"weight"`
	ReasonCodes     []string        `json:"reason_codes,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}

// DimensionSet holds exactly one result per dimension. Using a fixed record
// rather than a map makes a missing or duplicated dimension a type-level
// impossibility for well-formed values; Validate catches zero-valued slots.
type DimensionSet struct {
	PolicyFit       DimensionResult `json:"policy_fit"`
	DocumentHygiene DimensionResult `json:"document_hygiene"`
	FMVVerification DimensionResult `json:"fmv_verification"`
	TaxReadiness    DimensionResult `json:"tax_readiness"`
	BrandSafety     DimensionResult `json:"brand_safety"`
	GuardianConsent DimensionResult `json:"guardian_consent"`
}

// All returns the six results in fixed declaration order.
func (s DimensionSet) All() [6]DimensionResult {
	return [6]DimensionResult{
		s.PolicyFit,
		s.DocumentHygiene,
		s.FMVVerification,
		s.TaxReadiness,
		s.BrandSafety,
		s.GuardianConsent,
	}
}

// Get returns the result for the given key. The second return is false for
// an unknown key.
func (s DimensionSet) Get(key DimensionKey) (DimensionResult, bool) {
	switch key {
	case DimensionPolicyFit:
		return s.PolicyFit, true
	case DimensionDocumentHygiene:
		return s.DocumentHygiene, true
	case DimensionFMVVerification:
		return s.FMVVerification, true
	case DimensionTaxReadiness:
		return s.TaxReadiness, true
	case DimensionBrandSafety:
		return s.BrandSafety, true
	case DimensionGuardianConsent:
		return s.GuardianConsent, true
	default:
		return DimensionResult{}, false
	}
}

// Missing returns the keys of slots that never received a result. A slot is
// considered unfilled when its Key is empty, which cannot happen for results
// produced by the scorer.
func (s DimensionSet) Missing() []DimensionKey {
	var missing []DimensionKey
	for i, r := range s.All() {
		if r.Key == "" {
			missing = append(missing, DimensionKeys()[i])
		}
	}
	return missing
}

// Validate reports ScoringIncomplete when any dimension slot is unfilled and
// ValidationError when a score is outside 0-100 or a result sits in the
// wrong slot.
func (s DimensionSet) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return NewScoringIncomplete(missing)
	}
	keys := DimensionKeys()
	for i, r := range s.All() {
		if r.Key != keys[i] {
			return NewValidation("dimension %q found in slot for %q", r.Key, keys[i])
		}
		if r.Score < 0 || r.Score > 100 {
			return NewValidation("dimension %q score %d out of range [0,100]", r.Key, r.Score)
		}
	}
	return nil
}
