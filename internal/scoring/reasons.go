package scoring

// Reason codes emitted by the dimension scorers. The issue catalog keys off
// these, so renaming one is a breaking change for stored score results.
const (
	// Policy fit.
	ReasonStateNILProhibited   = "STATE_NIL_PROHIBITED"
	ReasonSchoolAffiliated     = "SCHOOL_AFFILIATED"
	ReasonBoosterConnected     = "BOOSTER_CONNECTED"
	ReasonPayForPlayStructure  = "PAY_FOR_PLAY_STRUCTURE"
	ReasonProhibitedCategory   = "PROHIBITED_CATEGORY"
	ReasonMissingDeliverables  = "MISSING_DELIVERABLES"

	// Document hygiene.
	ReasonNoContractText       = "NO_CONTRACT_TEXT"
	ReasonContractTooShort     = "CONTRACT_TOO_SHORT"
	ReasonClauseEnrollment     = "CLAUSE_ENROLLMENT_REQUIREMENT"
	ReasonClausePerpetual      = "CLAUSE_PERPETUAL_RIGHTS"
	ReasonClausePerformance    = "CLAUSE_PERFORMANCE_BONUS"

	// FMV verification.
	ReasonNoFMVBand            = "NO_FMV_BAND"
	ReasonBelowFMVBand         = "BELOW_FMV_BAND"
	ReasonAboveFMVBand         = "ABOVE_FMV_BAND"
	ReasonExtremeOverpayment   = "EXTREME_OVERPAYMENT"

	// Tax readiness.
	ReasonBelowReportingFloor  = "BELOW_REPORTING_THRESHOLD"
	ReasonW9Missing            = "W9_MISSING"
	ReasonTaxUnacknowledged    = "TAX_OBLIGATIONS_UNACKNOWLEDGED"

	// Brand safety.
	ReasonSensitiveCategory    = "SENSITIVE_BRAND_CATEGORY"

	// Guardian consent.
	ReasonGuardianPending      = "GUARDIAN_CONSENT_PENDING"
	ReasonGuardianDenied       = "GUARDIAN_CONSENT_DENIED"
)
