package model

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestKindOf_WrappedChain(t *testing.T) {
	base := NewIllegalTransition(StateApproved, "approve on a terminal deal")
	wrapped := eris.Wrap(base, "engine: apply review decision")

	assert.Equal(t, KindIllegalTransition, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindIllegalTransition))
	assert.False(t, IsKind(wrapped, KindStaleState))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(eris.New("boom")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestError_MessageCarriesState(t *testing.T) {
	err := NewStaleState(StatePendingReview, "deal changed underneath the update")
	assert.Contains(t, err.Error(), "stale_state")
	assert.Contains(t, err.Error(), "pending_review")
}

func TestError_MessageCarriesDimensions(t *testing.T) {
	err := NewScoreTooLow(42, []DimensionKey{DimensionPolicyFit, DimensionFMVVerification})
	assert.Contains(t, err.Error(), "score_too_low")
	assert.Contains(t, err.Error(), "overall score 42")
	assert.Contains(t, err.Error(), "policy_fit, fmv_verification")
}

func TestNewScoringIncomplete_CountsMissing(t *testing.T) {
	err := NewScoringIncomplete([]DimensionKey{DimensionTaxReadiness})
	assert.Contains(t, err.Error(), "1 of 6 dimensions missing")
	assert.Equal(t, []DimensionKey{DimensionTaxReadiness}, err.FailingDimensions)
}

func TestNewValidation_Formats(t *testing.T) {
	err := NewValidation("compensation must be non-negative (got %.2f)", -5.0)
	assert.Equal(t, KindValidation, err.Kind)
	assert.Contains(t, err.Error(), "got -5.00")
}
