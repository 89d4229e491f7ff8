package model

import "time"

// SubmissionState is the disclosure lifecycle state of a deal.
type SubmissionState string

const (
	StateNotSubmitted        SubmissionState = "not_submitted"
	StatePendingReview       SubmissionState = "pending_review"
	StateApproved            SubmissionState = "approved"
	StateNeedsRevision       SubmissionState = "needs_revision"
	StateRejected            SubmissionState = "rejected"
	StateResponseSubmitted   SubmissionState = "response_submitted"
	StateConditionsCompleted SubmissionState = "conditions_completed"
)

// SubmissionStates returns every lifecycle state.
func SubmissionStates() []SubmissionState {
	return []SubmissionState{
		StateNotSubmitted,
		StatePendingReview,
		StateApproved,
		StateNeedsRevision,
		StateRejected,
		StateResponseSubmitted,
		StateConditionsCompleted,
	}
}

// Terminal reports whether the state admits no further transitions.
// A rejected deal is terminal for its own record: continuation happens
// through a new deal linked by lineage pointers.
func (s SubmissionState) Terminal() bool {
	return s == StateApproved || s == StateRejected
}

// ReviewDecision is a compliance-office outcome for a deal under review.
type ReviewDecision string

const (
	DecisionApproved           ReviewDecision = "approved"
	DecisionApprovedConditions ReviewDecision = "approved_with_conditions"
	DecisionRejected           ReviewDecision = "rejected"
	DecisionRevisionRequested  ReviewDecision = "revision_requested"
)

// SubmissionRecord tracks the disclosure lifecycle of one deal. Timestamps
// are append-only: SubmittedAt is set on the first entry into pending_review
// and ReviewedAt on the first review decision; neither is ever overwritten.
type SubmissionRecord struct {
	State                 SubmissionState `json:"state"`
	Deadline              time.Time       `json:"deadline"`
	SubmittedAt           *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt            *time.Time      `json:"reviewed_at,omitempty"`
	ReviewerNotes         string          `json:"reviewer_notes,omitempty"`
	AthleteNotes          string          `json:"athlete_notes,omitempty"`
	SupersededByDealID    string          `json:"superseded_by_deal_id,omitempty"`
	ResubmittedFromDealID string          `json:"resubmitted_from_deal_id,omitempty"`
}

// SubmissionEvent is one audit-trail entry for a lifecycle change.
type SubmissionEvent struct {
	ID        string    `json:"id"`
	DealID    string    `json:"deal_id"`
	Action    string    `json:"action"`
	FromState string    `json:"from_state"`
	ToState   string    `json:"to_state"`
	Actor     string    `json:"actor,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
