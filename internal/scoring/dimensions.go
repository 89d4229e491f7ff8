package scoring

import (
	"strings"

	"github.com/sells-group/nil-compliance/internal/model"
)

// clampScore keeps a dimension score inside [0,100].
func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// result assembles a DimensionResult, deriving status from the clamped score.
func result(key model.DimensionKey, score int, weight float64, reasons, recs []string) model.DimensionResult {
	score = clampScore(score)
	return model.DimensionResult{
		Key:             key,
		Score:           score,
		Status:          model.DimensionStatusFromScore(score),
		Weight:          weight,
		ReasonCodes:     reasons,
		Recommendations: recs,
	}
}

// scorePolicyFit evaluates structural compliance with NCAA and state policy.
// It starts from 100 and deducts per red flag; a jurisdiction that bars NIL
// entirely zeroes the dimension regardless of everything else.
func scorePolicyFit(facts model.DealFacts, rule model.StateRule, w float64) model.DimensionResult {
	if !rule.NILPermitted {
		return result(model.DimensionPolicyFit, 0, w,
			[]string{ReasonStateNILProhibited},
			[]string{"NIL activity is not permitted in " + rule.Code + "; consult your compliance office before proceeding"})
	}

	score := 100
	var reasons, recs []string

	if facts.SchoolAffiliated {
		score -= 35
		reasons = append(reasons, ReasonSchoolAffiliated)
		recs = append(recs, "deals with school-affiliated entities need institutional review before signing")
	}
	if facts.BoosterConnected {
		score -= 40
		reasons = append(reasons, ReasonBoosterConnected)
		recs = append(recs, "booster-connected deals draw heightened scrutiny; document the commercial rationale")
	}
	if facts.PerformanceBased {
		score -= 45
		reasons = append(reasons, ReasonPayForPlayStructure)
		recs = append(recs, "remove compensation tied to athletic performance or enrollment")
	}
	if cat := strings.ToLower(strings.TrimSpace(facts.BrandCategory)); cat != "" && rule.ProhibitsCategory(cat) {
		score -= 60
		reasons = append(reasons, ReasonProhibitedCategory)
		recs = append(recs, "the "+cat+" category is prohibited for NIL deals in "+rule.Code)
	}
	if strings.TrimSpace(facts.Deliverables) == "" {
		score -= 20
		reasons = append(reasons, ReasonMissingDeliverables)
		recs = append(recs, "specify concrete deliverables; compensation without services is a pay-for-play marker")
	}

	return result(model.DimensionPolicyFit, score, w, reasons, recs)
}

// clausePenalty is one problematic contract pattern and its deduction.
type clausePenalty struct {
	phrases []string
	penalty int
	reason  string
	rec     string
}

// clausePenalties are matched case-insensitively against the contract text.
var clausePenalties = []clausePenalty{
	{
		phrases: []string{"enrollment", "remain enrolled", "continued enrollment"},
		penalty: 30,
		reason:  ReasonClauseEnrollment,
		rec:     "strike clauses conditioning payment on enrollment at a particular school",
	},
	{
		phrases: []string{"perpetual", "in perpetuity", "irrevocable license"},
		penalty: 25,
		reason:  ReasonClausePerpetual,
		rec:     "limit the rights grant to a defined term instead of perpetual usage",
	},
	{
		phrases: []string{"performance bonus", "per touchdown", "per point", "athletic achievement"},
		penalty: 35,
		reason:  ReasonClausePerformance,
		rec:     "remove bonuses keyed to athletic performance",
	},
}

// scoreDocumentHygiene evaluates the contract itself: present, substantive,
// and free of clauses that convert an NIL deal into pay-for-play.
func scoreDocumentHygiene(facts model.DealFacts, cfg Config, w float64) model.DimensionResult {
	text := strings.TrimSpace(facts.ContractText)
	if text == "" {
		return result(model.DimensionDocumentHygiene, 35, w,
			[]string{ReasonNoContractText},
			[]string{"upload the written agreement; verbal deals cannot be reviewed"})
	}
	if len(text) < cfg.MinContractChars {
		return result(model.DimensionDocumentHygiene, 55, w,
			[]string{ReasonContractTooShort},
			[]string{"the agreement is too brief to contain real terms; request a complete contract"})
	}

	score := 95
	var reasons, recs []string
	lower := strings.ToLower(text)
	for _, cp := range clausePenalties {
		for _, p := range cp.phrases {
			if strings.Contains(lower, p) {
				score -= cp.penalty
				reasons = append(reasons, cp.reason)
				recs = append(recs, cp.rec)
				break
			}
		}
	}

	return result(model.DimensionDocumentHygiene, score, w, reasons, recs)
}

// scoreFMV compares compensation against the benchmark band for the deal
// type. Overpayment scores worse than underpayment: inflated compensation is
// the classic disguised-inducement shape.
func scoreFMV(facts model.DealFacts, cfg Config, w float64) model.DimensionResult {
	band, ok := cfg.FMVBands[facts.DealType]
	if !ok {
		return result(model.DimensionFMVVerification, 60, w,
			[]string{ReasonNoFMVBand},
			[]string{"no benchmark exists for this deal type; request an independent valuation"})
	}

	comp := facts.Compensation
	switch {
	case comp < band.Min:
		return result(model.DimensionFMVVerification, 70, w,
			[]string{ReasonBelowFMVBand},
			[]string{"compensation is below the typical range; confirm the deal terms are complete"})
	case comp <= band.Max:
		return result(model.DimensionFMVVerification, 95, w, nil, nil)
	case comp <= band.Max*extremeMultiple:
		return result(model.DimensionFMVVerification, 65, w,
			[]string{ReasonAboveFMVBand},
			[]string{"compensation exceeds the typical range; document the fair-market justification"})
	default:
		return result(model.DimensionFMVVerification, 20, w,
			[]string{ReasonExtremeOverpayment},
			[]string{"compensation is far above market for this activity and will read as an inducement"})
	}
}

// scoreTaxReadiness checks the paperwork required once projected annual
// earnings cross the 1099 reporting floor.
func scoreTaxReadiness(facts model.DealFacts, cfg Config, w float64) model.DimensionResult {
	projected := facts.YTDEarnings + facts.Compensation
	if projected < cfg.ReportingThreshold {
		return result(model.DimensionTaxReadiness, 85, w,
			[]string{ReasonBelowReportingFloor},
			[]string{"earnings are under the reporting threshold; no filing is required yet"})
	}

	score := 100
	var reasons, recs []string
	if !facts.W9Submitted {
		score -= 35
		reasons = append(reasons, ReasonW9Missing)
		recs = append(recs, "submit a W-9 to the paying party before the first payment")
	}
	if !facts.TaxAcknowledged {
		score -= 25
		reasons = append(reasons, ReasonTaxUnacknowledged)
		recs = append(recs, "acknowledge self-employment tax obligations for NIL income")
	}

	return result(model.DimensionTaxReadiness, score, w, reasons, recs)
}

// scoreBrandSafety evaluates the brand category against the jurisdiction's
// prohibited list and the platform's sensitive list.
func scoreBrandSafety(facts model.DealFacts, rule model.StateRule, cfg Config, w float64) model.DimensionResult {
	cat := strings.ToLower(strings.TrimSpace(facts.BrandCategory))
	if cat != "" && rule.ProhibitsCategory(cat) {
		return result(model.DimensionBrandSafety, 10, w,
			[]string{ReasonProhibitedCategory},
			[]string{"the " + cat + " category is prohibited in " + rule.Code + "; this deal cannot proceed as structured"})
	}
	for _, s := range cfg.SensitiveCategories {
		if cat == s {
			return result(model.DimensionBrandSafety, 60, w,
				[]string{ReasonSensitiveCategory},
				[]string{"the " + cat + " category often conflicts with school sponsor agreements; check institutional policy"})
		}
	}
	return result(model.DimensionBrandSafety, 95, w, nil, nil)
}

// scoreGuardianConsent gates deals for minor athletes on guardian approval.
// Adults always score 100.
func scoreGuardianConsent(facts model.DealFacts, w float64) model.DimensionResult {
	if !facts.IsMinor {
		return result(model.DimensionGuardianConsent, 100, w, nil, nil)
	}
	switch facts.GuardianStatus {
	case model.ConsentApproved:
		return result(model.DimensionGuardianConsent, 95, w, nil, nil)
	case model.ConsentDenied:
		return result(model.DimensionGuardianConsent, 0, w,
			[]string{ReasonGuardianDenied},
			[]string{"a guardian has denied consent; the deal cannot proceed"})
	default:
		return result(model.DimensionGuardianConsent, 40, w,
			[]string{ReasonGuardianPending},
			[]string{"request guardian consent before signing; minors cannot contract alone"})
	}
}
