package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/workflow"
)

// applyAndPersist runs one workflow step and writes it back with the OCC
// guard, then appends the audit event. The event write rides after the
// guarded update, so a lost race never produces a phantom event.
func (e *Engine) applyAndPersist(ctx context.Context, deal *model.Deal, action workflow.Action, in workflow.Input) error {
	expected := deal.Submission.State
	ev, err := workflow.Apply(deal, action, in, e.now())
	if err != nil {
		return err
	}
	if err := e.store.UpdateDeal(ctx, *deal, expected); err != nil {
		return err
	}
	ev.ID = uuid.New().String()
	if err := e.store.AppendEvent(ctx, ev); err != nil {
		return eris.Wrap(err, "engine: append event")
	}
	zap.L().Info("engine: transition applied",
		zap.String("deal_id", deal.ID),
		zap.String("action", string(action)),
		zap.String("from", ev.FromState),
		zap.String("to", ev.ToState))
	return nil
}

// SubmitForReview moves a deal into pending_review. Red deals are blocked
// with ScoreTooLow before any state changes.
func (e *Engine) SubmitForReview(ctx context.Context, dealID, actor string) (*model.Deal, error) {
	deal, err := e.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, eris.Wrap(err, "engine: submit")
	}
	if err := e.applyAndPersist(ctx, deal, workflow.ActionSubmit, workflow.Input{Actor: actor}); err != nil {
		return nil, eris.Wrap(err, "engine: submit")
	}
	return deal, nil
}

// ApplyReviewDecision records a compliance-office outcome. A conditional
// approval attaches notes and an audit event but leaves the deal in
// pending_review until the athlete completes the conditions.
func (e *Engine) ApplyReviewDecision(ctx context.Context, dealID string, decision model.ReviewDecision, actor, notes string) (*model.Deal, error) {
	deal, err := e.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, eris.Wrap(err, "engine: review")
	}

	switch decision {
	case model.DecisionApproved:
		err = e.applyAndPersist(ctx, deal, workflow.ActionApprove, workflow.Input{Actor: actor, Notes: notes})
	case model.DecisionRejected:
		err = e.applyAndPersist(ctx, deal, workflow.ActionReject, workflow.Input{Actor: actor, Notes: notes})
	case model.DecisionRevisionRequested:
		err = e.applyAndPersist(ctx, deal, workflow.ActionRequestRevision, workflow.Input{Actor: actor, Notes: notes})
	case model.DecisionApprovedConditions:
		err = e.approveWithConditions(ctx, deal, actor, notes)
	default:
		err = model.NewValidation("unknown review decision %q", decision)
	}
	if err != nil {
		return nil, eris.Wrap(err, "engine: review")
	}
	return deal, nil
}

// approveWithConditions is a decision, not a transition: the state stays
// pending_review, the conditions land in reviewer notes, and the audit trail
// records the decision.
func (e *Engine) approveWithConditions(ctx context.Context, deal *model.Deal, actor, notes string) error {
	if deal.Submission.State != model.StatePendingReview {
		return model.NewIllegalTransition(deal.Submission.State, "conditional approval requires a deal under review")
	}
	now := e.now()
	expected := deal.Submission.State
	if deal.Submission.ReviewedAt == nil {
		at := now
		deal.Submission.ReviewedAt = &at
	}
	deal.Submission.ReviewerNotes = notes
	deal.UpdatedAt = now

	if err := e.store.UpdateDeal(ctx, *deal, expected); err != nil {
		return err
	}
	return e.store.AppendEvent(ctx, model.SubmissionEvent{
		ID:        uuid.New().String(),
		DealID:    deal.ID,
		Action:    string(model.DecisionApprovedConditions),
		FromState: string(model.StatePendingReview),
		ToState:   string(model.StatePendingReview),
		Actor:     actor,
		Notes:     notes,
		CreatedAt: now,
	})
}

// CompleteConditions records that the athlete satisfied the conditions of a
// conditional approval.
func (e *Engine) CompleteConditions(ctx context.Context, dealID, actor, notes string) (*model.Deal, error) {
	deal, err := e.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, eris.Wrap(err, "engine: complete conditions")
	}
	if err := e.applyAndPersist(ctx, deal, workflow.ActionCompleteConditions, workflow.Input{Actor: actor, Notes: notes}); err != nil {
		return nil, eris.Wrap(err, "engine: complete conditions")
	}
	return deal, nil
}

// RespondToRevision records the athlete's answer to a revision request and
// requeues the deal for review in the same operation. Both steps share one
// guarded write: the caller sees the deal land directly in pending_review.
func (e *Engine) RespondToRevision(ctx context.Context, dealID, actor, notes string) (*model.Deal, error) {
	deal, err := e.store.GetDeal(ctx, dealID)
	if err != nil {
		return nil, eris.Wrap(err, "engine: respond")
	}

	expected := deal.Submission.State
	now := e.now()
	respondEv, err := workflow.Apply(deal, workflow.ActionRespond, workflow.Input{Actor: actor, Notes: notes}, now)
	if err != nil {
		return nil, eris.Wrap(err, "engine: respond")
	}
	requeueEv, err := workflow.Apply(deal, workflow.ActionRequeue, workflow.Input{}, now)
	if err != nil {
		return nil, eris.Wrap(err, "engine: respond")
	}

	if err := e.store.UpdateDeal(ctx, *deal, expected); err != nil {
		return nil, eris.Wrap(err, "engine: respond")
	}
	for _, ev := range []model.SubmissionEvent{respondEv, requeueEv} {
		ev.ID = uuid.New().String()
		if err := e.store.AppendEvent(ctx, ev); err != nil {
			return nil, eris.Wrap(err, "engine: respond")
		}
	}
	return deal, nil
}

// ResubmitDeal creates a fresh deal from updated facts and links it to the
// superseded one. A deal can only be superseded once; lineage is a chain,
// never a tree, so following the pointers always terminates.
func (e *Engine) ResubmitDeal(ctx context.Context, oldDealID string, facts model.DealFacts) (*model.Deal, error) {
	old, err := e.store.GetDeal(ctx, oldDealID)
	if err != nil {
		return nil, eris.Wrap(err, "engine: resubmit")
	}
	if old.Submission.SupersededByDealID != "" {
		return nil, model.NewValidation("deal %s was already resubmitted as %s", old.ID, old.Submission.SupersededByDealID)
	}
	switch old.Submission.State {
	case model.StateRejected, model.StateNeedsRevision:
	default:
		return nil, model.NewIllegalTransition(old.Submission.State, "only rejected or needs_revision deals can be resubmitted")
	}

	next, err := e.buildDeal(facts, e.now())
	if err != nil {
		return nil, eris.Wrap(err, "engine: resubmit")
	}
	next.Submission.ResubmittedFromDealID = old.ID
	next.ResubmissionCount = old.ResubmissionCount + 1

	// The guarded write on the old deal is the commit point: losing the race
	// here means nothing was persisted, so no orphan replacement can exist.
	expected := old.Submission.State
	old.Submission.SupersededByDealID = next.ID
	old.UpdatedAt = e.now()
	if err := e.store.UpdateDeal(ctx, *old, expected); err != nil {
		return nil, eris.Wrap(err, "engine: resubmit supersede")
	}

	if err := e.store.CreateDeal(ctx, next); err != nil {
		// Unwind the lineage pointer so the old deal does not reference a
		// replacement that was never written.
		old.Submission.SupersededByDealID = ""
		if rbErr := e.store.UpdateDeal(ctx, *old, expected); rbErr != nil {
			zap.L().Error("engine: resubmit unwind failed",
				zap.String("deal_id", old.ID), zap.Error(rbErr))
		}
		return nil, eris.Wrap(err, "engine: resubmit create")
	}

	zap.L().Info("engine: deal resubmitted",
		zap.String("old_deal_id", old.ID),
		zap.String("new_deal_id", next.ID),
		zap.Int("resubmission_count", next.ResubmissionCount))
	return &next, nil
}
