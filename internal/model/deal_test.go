package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validFacts() DealFacts {
	return DealFacts{
		AthleteID:       "ath-1",
		CounterpartName: "Hometown Autos",
		CounterpartType: CounterpartLocalBusiness,
		DealType:        DealSocialPost,
		Compensation:    1500,
		Deliverables:    "3 instagram posts",
		Jurisdiction:    "TX",
		StartDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDealFacts_ValidateOK(t *testing.T) {
	assert.NoError(t, validFacts().Validate())
}

func TestDealFacts_ValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DealFacts)
	}{
		{"missing athlete", func(f *DealFacts) { f.AthleteID = "" }},
		{"missing counterpart", func(f *DealFacts) { f.CounterpartName = "" }},
		{"missing jurisdiction", func(f *DealFacts) { f.Jurisdiction = "" }},
		{"negative compensation", func(f *DealFacts) { f.Compensation = -1 }},
		{"nan compensation", func(f *DealFacts) { f.Compensation = math.NaN() }},
		{"inf compensation", func(f *DealFacts) { f.Compensation = math.Inf(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFacts()
			tc.mutate(&f)
			err := f.Validate()
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestOverallStatusFromScore_Boundaries(t *testing.T) {
	assert.Equal(t, StatusGreen, OverallStatusFromScore(100))
	assert.Equal(t, StatusGreen, OverallStatusFromScore(80))
	assert.Equal(t, StatusYellow, OverallStatusFromScore(79))
	assert.Equal(t, StatusYellow, OverallStatusFromScore(50))
	assert.Equal(t, StatusRed, OverallStatusFromScore(49))
	assert.Equal(t, StatusRed, OverallStatusFromScore(0))
}

func TestSubmissionState_Terminal(t *testing.T) {
	assert.True(t, StateApproved.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.False(t, StateNotSubmitted.Terminal())
	assert.False(t, StatePendingReview.Terminal())
	assert.False(t, StateNeedsRevision.Terminal())
	assert.False(t, StateResponseSubmitted.Terminal())
	assert.False(t, StateConditionsCompleted.Terminal())
}
