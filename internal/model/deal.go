package model

import (
	"math"
	"time"
)

// DealType categorizes the activity the athlete is compensated for.
type DealType string

const (
	DealSocialPost      DealType = "social_post"
	DealAppearance      DealType = "appearance"
	DealEndorsement     DealType = "endorsement"
	DealBrandAmbassador DealType = "brand_ambassador"
	DealMerchandise     DealType = "merchandise"
	DealCamp            DealType = "camp"
	DealOther           DealType = "other"
)

// CounterpartType categorizes the paying party.
type CounterpartType string

const (
	CounterpartBrand         CounterpartType = "brand"
	CounterpartAgency        CounterpartType = "agency"
	CounterpartLocalBusiness CounterpartType = "local_business"
	CounterpartCollective    CounterpartType = "collective"
	CounterpartIndividual    CounterpartType = "individual"
	CounterpartUnknown       CounterpartType = "unknown"
)

// ConsentStatus tracks guardian consent for minor athletes.
type ConsentStatus string

const (
	ConsentNotRequired ConsentStatus = "not_required"
	ConsentPending     ConsentStatus = "pending"
	ConsentApproved    ConsentStatus = "approved"
	ConsentDenied      ConsentStatus = "denied"
)

// OverallStatus is the deal-level traffic light derived from the overall score.
type OverallStatus string

const (
	StatusGreen  OverallStatus = "green"
	StatusYellow OverallStatus = "yellow"
	StatusRed    OverallStatus = "red"
)

// OverallStatusFromScore derives the deal status from the weighted score.
// Boundaries are inclusive: 80 is green, 50 is yellow.
func OverallStatusFromScore(score int) OverallStatus {
	switch {
	case score >= 80:
		return StatusGreen
	case score >= 50:
		return StatusYellow
	default:
		return StatusRed
	}
}

// PayForPlayRisk classifies how likely the deal is disguised pay-for-play.
// It is a decision-table signal independent of the weighted score.
type PayForPlayRisk string

const (
	RiskLow    PayForPlayRisk = "low"
	RiskMedium PayForPlayRisk = "medium"
	RiskHigh   PayForPlayRisk = "high"
)

// DealFacts is the raw input to the scoring engine: everything known about a
// proposed or signed deal plus the athlete context the dimensions need.
type DealFacts struct {
	AthleteID        string          `json:"athlete_id"`
	CounterpartName  string          `json:"counterpart_name"`
	CounterpartType  CounterpartType `json:"counterpart_type"`
	DealType         DealType        `json:"deal_type"`
	Compensation     float64         `json:"compensation"`
	Deliverables     string          `json:"deliverables"`
	ContractText     string          `json:"contract_text,omitempty"`
	BrandCategory    string          `json:"brand_category,omitempty"`
	SchoolAffiliated bool            `json:"school_affiliated"`
	BoosterConnected bool            `json:"booster_connected"`
	PerformanceBased bool            `json:"performance_based"`
	Jurisdiction     string          `json:"jurisdiction"` // two-letter state code
	StartDate        time.Time       `json:"start_date"`

	// Athlete context.
	IsMinor         bool          `json:"is_minor"`
	GuardianStatus  ConsentStatus `json:"guardian_status,omitempty"`
	TaxAcknowledged bool          `json:"tax_acknowledged"`
	W9Submitted     bool          `json:"w9_submitted"`
	YTDEarnings     float64       `json:"ytd_earnings"`
}

// Validate checks caller-fixable preconditions on deal facts.
func (f DealFacts) Validate() error {
	if f.AthleteID == "" {
		return NewValidation("athlete_id is required")
	}
	if f.CounterpartName == "" {
		return NewValidation("counterpart_name is required")
	}
	if f.Compensation < 0 {
		return NewValidation("compensation must be non-negative (got %.2f)", f.Compensation)
	}
	if math.IsNaN(f.Compensation) || math.IsInf(f.Compensation, 0) {
		return NewValidation("compensation must be a finite amount")
	}
	if f.Jurisdiction == "" {
		return NewValidation("jurisdiction is required")
	}
	return nil
}

// ScoreResult is the complete output of one scoring pass over a deal.
type ScoreResult struct {
	Dimensions     DimensionSet   `json:"dimensions"`
	OverallScore   int            `json:"overall_score"`
	Status         OverallStatus  `json:"status"`
	PayForPlayRisk PayForPlayRisk `json:"pay_for_play_risk"`
	Issues         []Issue        `json:"issues"`
	ScoredAt       time.Time      `json:"scored_at"`
}

// Deal is the persisted aggregate: facts, latest score, and submission
// lifecycle. OverallScore, Status, PayForPlayRisk and Issues are always
// replaced wholesale by a scoring pass, never edited independently.
type Deal struct {
	ID                string           `json:"id"`
	Facts             DealFacts        `json:"facts"`
	Dimensions        DimensionSet     `json:"dimensions"`
	OverallScore      int              `json:"overall_score"`
	Status            OverallStatus    `json:"status"`
	PayForPlayRisk    PayForPlayRisk   `json:"pay_for_play_risk"`
	Issues            []Issue          `json:"issues"`
	Submission        SubmissionRecord `json:"submission"`
	ResubmissionCount int              `json:"resubmission_count"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
