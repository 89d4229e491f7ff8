// Package workflow implements the submission state machine. The transition
// table is total and deterministic: every (state, action) pair resolves to
// exactly one next state or exactly one typed error, and nothing outside
// Apply mutates a submission record.
package workflow

import (
	"strings"
	"time"

	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/scoring"
)

// Action is a lifecycle input to the state machine.
type Action string

const (
	// ActionSubmit moves a scored deal into compliance review.
	ActionSubmit Action = "submit"
	// ActionApprove is a reviewer approval, also used to close out a deal
	// whose conditions were completed.
	ActionApprove Action = "approve"
	// ActionReject is a terminal reviewer rejection.
	ActionReject Action = "reject"
	// ActionRequestRevision sends the deal back to the athlete for changes.
	ActionRequestRevision Action = "request_revision"
	// ActionCompleteConditions records that the athlete satisfied the
	// conditions attached to a conditional approval.
	ActionCompleteConditions Action = "complete_conditions"
	// ActionRespond is the athlete's answer to a revision request.
	ActionRespond Action = "respond"
	// ActionRequeue returns a responded deal to the review queue. Applied
	// automatically after a successful respond.
	ActionRequeue Action = "requeue"
)

// transitions is the complete legal state machine. Pairs absent here are
// illegal, full stop.
var transitions = map[model.SubmissionState]map[Action]model.SubmissionState{
	model.StateNotSubmitted: {
		ActionSubmit: model.StatePendingReview,
	},
	model.StatePendingReview: {
		ActionApprove:            model.StateApproved,
		ActionReject:             model.StateRejected,
		ActionRequestRevision:    model.StateNeedsRevision,
		ActionCompleteConditions: model.StateConditionsCompleted,
	},
	model.StateConditionsCompleted: {
		ActionApprove: model.StateApproved,
	},
	model.StateNeedsRevision: {
		ActionRespond: model.StateResponseSubmitted,
	},
	model.StateResponseSubmitted: {
		ActionRequeue: model.StatePendingReview,
	},
}

// Next resolves one step of the transition table without applying it.
func Next(state model.SubmissionState, action Action) (model.SubmissionState, error) {
	if to, ok := transitions[state][action]; ok {
		return to, nil
	}
	return "", model.NewIllegalTransition(state, string(action)+" is not legal from this state")
}

// reviewActions set ReviewedAt on first use and carry reviewer notes.
func isReviewAction(a Action) bool {
	switch a {
	case ActionApprove, ActionReject, ActionRequestRevision, ActionCompleteConditions:
		return true
	}
	return false
}

// Input carries the optional context for one transition.
type Input struct {
	Actor string
	Notes string
}

// Apply executes one transition on the deal, enforcing preconditions and
// append-only timestamps, and returns the audit event for the step. The deal
// is only mutated on success; on error it is untouched.
//
// Preconditions: submit requires the latest score to be green or yellow;
// respond requires non-empty athlete notes.
func Apply(deal *model.Deal, action Action, in Input, now time.Time) (model.SubmissionEvent, error) {
	from := deal.Submission.State
	to, err := Next(from, action)
	if err != nil {
		return model.SubmissionEvent{}, err
	}

	switch action {
	case ActionSubmit:
		if deal.Status == model.StatusRed {
			return model.SubmissionEvent{}, model.NewScoreTooLow(
				deal.OverallScore, scoring.FailingDimensions(deal.Dimensions))
		}
	case ActionRespond:
		if strings.TrimSpace(in.Notes) == "" {
			return model.SubmissionEvent{}, model.NewValidation("a response to a revision request cannot be empty")
		}
	}

	deal.Submission.State = to
	if action == ActionSubmit && deal.Submission.SubmittedAt == nil {
		at := now
		deal.Submission.SubmittedAt = &at
	}
	if isReviewAction(action) {
		if deal.Submission.ReviewedAt == nil {
			at := now
			deal.Submission.ReviewedAt = &at
		}
		if in.Notes != "" {
			deal.Submission.ReviewerNotes = in.Notes
		}
	}
	if action == ActionRespond {
		deal.Submission.AthleteNotes = in.Notes
	}
	deal.UpdatedAt = now

	return model.SubmissionEvent{
		DealID:    deal.ID,
		Action:    string(action),
		FromState: string(from),
		ToState:   string(to),
		Actor:     in.Actor,
		Notes:     in.Notes,
		CreatedAt: now,
	}, nil
}

// LegalActions lists the actions available from a state, for surfacing in
// clients. Order is stable.
func LegalActions(state model.SubmissionState) []Action {
	all := []Action{
		ActionSubmit,
		ActionApprove,
		ActionReject,
		ActionRequestRevision,
		ActionCompleteConditions,
		ActionRespond,
		ActionRequeue,
	}
	var out []Action
	for _, a := range all {
		if _, ok := transitions[state][a]; ok {
			out = append(out, a)
		}
	}
	return out
}
