package issues

import (
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/scoring"
)

// entry is the catalog row for one reason code.
type entry struct {
	Severity    model.Severity
	Title       string
	Description string
	Action      model.FixAction
}

// catalog maps every reason code the scorers can emit to exactly one issue
// shape. Codes absent here fall through to the generic breakdown, so an
// unknown code degrades to an explainable issue instead of being dropped.
var catalog = map[string]entry{
	scoring.ReasonStateNILProhibited: {
		Severity:    model.SeverityCritical,
		Title:       "NIL deals are not permitted in this state",
		Description: "Your state does not currently allow NIL activity for your level. This deal cannot proceed as structured.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonSchoolAffiliated: {
		Severity:    model.SeverityWarning,
		Title:       "Counterpart is affiliated with your school",
		Description: "Deals with school-affiliated entities need institutional review before signing.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonBoosterConnected: {
		Severity:    model.SeverityCritical,
		Title:       "Counterpart is connected to a booster",
		Description: "Booster-connected compensation is the most scrutinized NIL pattern. Document the commercial rationale before proceeding.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonPayForPlayStructure: {
		Severity:    model.SeverityCritical,
		Title:       "Compensation is tied to athletic performance",
		Description: "Payment conditioned on performance or enrollment is pay-for-play, not NIL. Restructure the deal.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonProhibitedCategory: {
		Severity:    model.SeverityCritical,
		Title:       "Brand category is prohibited in your state",
		Description: "This compensation category is banned for NIL deals in your jurisdiction.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonMissingDeliverables: {
		Severity:    model.SeverityWarning,
		Title:       "No deliverables specified",
		Description: "Compensation without defined services reads as an inducement. List what you will actually provide.",
		Action:      model.ActionOpenSubmissionFlow,
	},
	scoring.ReasonNoContractText: {
		Severity:    model.SeverityCritical,
		Title:       "No written agreement on file",
		Description: "Upload the contract so its terms can be reviewed. Verbal deals cannot be evaluated or defended.",
		Action:      model.ActionOpenUploadFlow,
	},
	scoring.ReasonContractTooShort: {
		Severity:    model.SeverityWarning,
		Title:       "Agreement looks incomplete",
		Description: "The uploaded text is too brief to contain real terms. Request and upload the full contract.",
		Action:      model.ActionOpenUploadFlow,
	},
	scoring.ReasonClauseEnrollment: {
		Severity:    model.SeverityCritical,
		Title:       "Contract conditions payment on enrollment",
		Description: "Clauses requiring continued enrollment at a school convert the deal into pay-for-play.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonClausePerpetual: {
		Severity:    model.SeverityWarning,
		Title:       "Contract grants perpetual rights",
		Description: "A perpetual or irrevocable rights grant outlives the deal. Negotiate a defined term.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonClausePerformance: {
		Severity:    model.SeverityCritical,
		Title:       "Contract contains performance bonuses",
		Description: "Bonuses keyed to athletic results are prohibited compensation. Remove them before signing.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonNoFMVBand: {
		Severity:    model.SeverityWarning,
		Title:       "No market benchmark for this deal type",
		Description: "Fair-market value cannot be checked automatically. Request an independent valuation.",
		Action:      model.ActionOpenFMVExplainer,
	},
	scoring.ReasonBelowFMVBand: {
		Severity:    model.SeverityWarning,
		Title:       "Compensation is below the typical range",
		Description: "The offer is under market for this activity. Confirm the terms are complete before accepting.",
		Action:      model.ActionOpenFMVExplainer,
	},
	scoring.ReasonAboveFMVBand: {
		Severity:    model.SeverityWarning,
		Title:       "Compensation is above the typical range",
		Description: "The offer exceeds market for this activity. Keep documentation supporting the valuation.",
		Action:      model.ActionOpenFMVExplainer,
	},
	scoring.ReasonExtremeOverpayment: {
		Severity:    model.SeverityCritical,
		Title:       "Compensation far exceeds market value",
		Description: "Payment this far above market will read as a disguised inducement to reviewers.",
		Action:      model.ActionOpenFMVExplainer,
	},
	// Emitted on a good-band dimension, so it surfaces through the
	// dimension's reason codes rather than as a generated issue.
	scoring.ReasonBelowReportingFloor: {
		Severity:    model.SeverityInfo,
		Title:       "Earnings under the reporting threshold",
		Description: "Your projected NIL income is below the federal reporting floor. No filing is required yet.",
		Action:      model.ActionOpenGenericBreakdown,
	},
	scoring.ReasonW9Missing: {
		Severity:    model.SeverityWarning,
		Title:       "W-9 not on file",
		Description: "The paying party needs a W-9 before your first payment once earnings cross the reporting floor.",
		Action:      model.ActionOpenUploadFlow,
	},
	scoring.ReasonTaxUnacknowledged: {
		Severity:    model.SeverityWarning,
		Title:       "Tax obligations not acknowledged",
		Description: "NIL income is self-employment income. Acknowledge your estimated-tax obligations.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonSensitiveCategory: {
		Severity:    model.SeverityWarning,
		Title:       "Brand category may conflict with school policy",
		Description: "This category frequently collides with institutional sponsor agreements. Check your school's policy.",
		Action:      model.ActionOpenGuidelines,
	},
	scoring.ReasonGuardianPending: {
		Severity:    model.SeverityWarning,
		Title:       "Guardian consent pending",
		Description: "A guardian must approve this deal before a minor athlete can sign.",
		Action:      model.ActionOpenSubmissionFlow,
	},
	scoring.ReasonGuardianDenied: {
		Severity:    model.SeverityCritical,
		Title:       "Guardian consent denied",
		Description: "A guardian has declined this deal. It cannot proceed without consent.",
		Action:      model.ActionOpenGuidelines,
	},
}

// lookup resolves a reason code, falling back to a generic entry whose
// severity follows the dimension's status.
func lookup(code string, status model.DimensionStatus) entry {
	if e, ok := catalog[code]; ok {
		return e
	}
	sev := model.SeverityWarning
	if status == model.DimensionCritical {
		sev = model.SeverityCritical
	}
	return entry{
		Severity:    sev,
		Title:       "Compliance flag on this deal",
		Description: "Review the score breakdown for details on this finding.",
		Action:      model.ActionOpenGenericBreakdown,
	}
}
