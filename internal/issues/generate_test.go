package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/scoring"
)

func dim(key model.DimensionKey, score int, codes ...string) model.DimensionResult {
	return model.DimensionResult{
		Key:         key,
		Score:       score,
		Status:      model.DimensionStatusFromScore(score),
		Weight:      0.1,
		ReasonCodes: codes,
	}
}

func TestGenerate_SkipsGoodDimensions(t *testing.T) {
	set := model.DimensionSet{
		PolicyFit:       dim(model.DimensionPolicyFit, 95),
		DocumentHygiene: dim(model.DimensionDocumentHygiene, 90),
		FMVVerification: dim(model.DimensionFMVVerification, 95),
		TaxReadiness:    dim(model.DimensionTaxReadiness, 85, scoring.ReasonBelowReportingFloor),
		BrandSafety:     dim(model.DimensionBrandSafety, 95),
		GuardianConsent: dim(model.DimensionGuardianConsent, 100),
	}
	assert.Empty(t, Generate(set))
}

func TestGenerate_OneIssuePerReasonCode(t *testing.T) {
	set := model.DimensionSet{
		PolicyFit:       dim(model.DimensionPolicyFit, 25, scoring.ReasonSchoolAffiliated, scoring.ReasonBoosterConnected),
		DocumentHygiene: dim(model.DimensionDocumentHygiene, 95),
		FMVVerification: dim(model.DimensionFMVVerification, 95),
		TaxReadiness:    dim(model.DimensionTaxReadiness, 100),
		BrandSafety:     dim(model.DimensionBrandSafety, 95),
		GuardianConsent: dim(model.DimensionGuardianConsent, 100),
	}

	got := Generate(set)
	require.Len(t, got, 2)
	// Booster is critical, school affiliation warning: critical sorts first.
	assert.Equal(t, scoring.ReasonBoosterConnected, got[0].ReasonCode)
	assert.Equal(t, model.SeverityCritical, got[0].Severity)
	assert.Equal(t, scoring.ReasonSchoolAffiliated, got[1].ReasonCode)
	assert.Equal(t, model.SeverityWarning, got[1].Severity)
}

func TestGenerate_TiesBreakByDimensionOrder(t *testing.T) {
	set := model.DimensionSet{
		PolicyFit:       dim(model.DimensionPolicyFit, 95),
		DocumentHygiene: dim(model.DimensionDocumentHygiene, 55, scoring.ReasonContractTooShort),
		FMVVerification: dim(model.DimensionFMVVerification, 65, scoring.ReasonAboveFMVBand),
		TaxReadiness:    dim(model.DimensionTaxReadiness, 100),
		BrandSafety:     dim(model.DimensionBrandSafety, 95),
		GuardianConsent: dim(model.DimensionGuardianConsent, 100),
	}

	got := Generate(set)
	require.Len(t, got, 2)
	// Both warnings: document_hygiene declares before fmv_verification.
	assert.Equal(t, model.DimensionDocumentHygiene, got[0].Dimension)
	assert.Equal(t, model.DimensionFMVVerification, got[1].Dimension)
}

func TestGenerate_UnknownCodeFallsBack(t *testing.T) {
	set := model.DimensionSet{
		PolicyFit:       dim(model.DimensionPolicyFit, 40, "SOME_FUTURE_CODE"),
		DocumentHygiene: dim(model.DimensionDocumentHygiene, 95),
		FMVVerification: dim(model.DimensionFMVVerification, 95),
		TaxReadiness:    dim(model.DimensionTaxReadiness, 100),
		BrandSafety:     dim(model.DimensionBrandSafety, 95),
		GuardianConsent: dim(model.DimensionGuardianConsent, 100),
	}

	got := Generate(set)
	require.Len(t, got, 1)
	assert.Equal(t, model.ActionOpenGenericBreakdown, got[0].Action)
	// Dimension is critical, so the fallback inherits critical.
	assert.Equal(t, model.SeverityCritical, got[0].Severity)
}

func TestCatalog_EveryEntryHasAnAction(t *testing.T) {
	for code, e := range catalog {
		assert.NotEmpty(t, e.Action, "catalog entry %s has no fix action", code)
		assert.NotEmpty(t, e.Title, "catalog entry %s has no title", code)
	}
}

// The catalog is total over every reason code a scorer can emit, including
// codes that only ever appear on good dimensions. Clients resolve codes from
// DimensionResult.ReasonCodes directly, not just from generated issues.
func TestCatalog_CoversEveryScorerReasonCode(t *testing.T) {
	codes := []string{
		scoring.ReasonStateNILProhibited,
		scoring.ReasonSchoolAffiliated,
		scoring.ReasonBoosterConnected,
		scoring.ReasonPayForPlayStructure,
		scoring.ReasonProhibitedCategory,
		scoring.ReasonMissingDeliverables,
		scoring.ReasonNoContractText,
		scoring.ReasonContractTooShort,
		scoring.ReasonClauseEnrollment,
		scoring.ReasonClausePerpetual,
		scoring.ReasonClausePerformance,
		scoring.ReasonNoFMVBand,
		scoring.ReasonBelowFMVBand,
		scoring.ReasonAboveFMVBand,
		scoring.ReasonExtremeOverpayment,
		scoring.ReasonBelowReportingFloor,
		scoring.ReasonW9Missing,
		scoring.ReasonTaxUnacknowledged,
		scoring.ReasonSensitiveCategory,
		scoring.ReasonGuardianPending,
		scoring.ReasonGuardianDenied,
	}
	for _, code := range codes {
		_, ok := catalog[code]
		assert.True(t, ok, "no catalog entry for reason code %s", code)
	}
}

func TestHasCritical(t *testing.T) {
	assert.False(t, HasCritical(nil))
	assert.False(t, HasCritical([]model.Issue{{Severity: model.SeverityWarning}}))
	assert.True(t, HasCritical([]model.Issue{
		{Severity: model.SeverityInfo},
		{Severity: model.SeverityCritical},
	}))
}
