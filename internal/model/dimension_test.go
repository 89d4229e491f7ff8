package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionStatusFromScore_Boundaries(t *testing.T) {
	assert.Equal(t, DimensionGood, DimensionStatusFromScore(100))
	assert.Equal(t, DimensionGood, DimensionStatusFromScore(80))
	assert.Equal(t, DimensionWarning, DimensionStatusFromScore(79))
	assert.Equal(t, DimensionWarning, DimensionStatusFromScore(50))
	assert.Equal(t, DimensionCritical, DimensionStatusFromScore(49))
	assert.Equal(t, DimensionCritical, DimensionStatusFromScore(0))
}

func completeSet() DimensionSet {
	set := DimensionSet{}
	for _, k := range DimensionKeys() {
		r := DimensionResult{Key: k, Score: 90, Status: DimensionGood, Weight: 0.1}
		switch k {
		case DimensionPolicyFit:
			set.PolicyFit = r
		case DimensionDocumentHygiene:
			set.DocumentHygiene = r
		case DimensionFMVVerification:
			set.FMVVerification = r
		case DimensionTaxReadiness:
			set.TaxReadiness = r
		case DimensionBrandSafety:
			set.BrandSafety = r
		case DimensionGuardianConsent:
			set.GuardianConsent = r
		}
	}
	return set
}

func TestDimensionSet_ValidateComplete(t *testing.T) {
	assert.NoError(t, completeSet().Validate())
}

func TestDimensionSet_MissingDimension(t *testing.T) {
	set := completeSet()
	set.TaxReadiness = DimensionResult{}

	err := set.Validate()
	require.Error(t, err)
	assert.Equal(t, KindScoringIncomplete, KindOf(err))
	assert.Equal(t, []DimensionKey{DimensionTaxReadiness}, set.Missing())
}

func TestDimensionSet_EmptyIsAllMissing(t *testing.T) {
	var set DimensionSet
	assert.Len(t, set.Missing(), 6)
	assert.Equal(t, KindScoringIncomplete, KindOf(set.Validate()))
}

func TestDimensionSet_ScoreOutOfRange(t *testing.T) {
	set := completeSet()
	set.BrandSafety.Score = 101

	err := set.Validate()
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDimensionSet_WrongSlot(t *testing.T) {
	set := completeSet()
	set.PolicyFit.Key = DimensionBrandSafety

	err := set.Validate()
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDimensionSet_AllPreservesOrder(t *testing.T) {
	set := completeSet()
	keys := DimensionKeys()
	for i, r := range set.All() {
		assert.Equal(t, keys[i], r.Key)
	}
}

func TestDimensionSet_Get(t *testing.T) {
	set := completeSet()

	r, ok := set.Get(DimensionFMVVerification)
	require.True(t, ok)
	assert.Equal(t, DimensionFMVVerification, r.Key)

	_, ok = set.Get(DimensionKey("nonsense"))
	assert.False(t, ok)
}
