// Package engine orchestrates the compliance workflow: scoring passes,
// submission lifecycle transitions, resubmission lineage, and the read-side
// views. It owns no business rules itself; those live in scoring, workflow,
// issues and deadline, and the engine wires them to persistence.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/deadline"
	"github.com/sells-group/nil-compliance/internal/issues"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/rules"
	"github.com/sells-group/nil-compliance/internal/scoring"
	"github.com/sells-group/nil-compliance/internal/store"
)

// Engine coordinates scoring, workflow and persistence. The wall clock is
// injected so every derived value (deadlines, timestamps, urgency) is
// reproducible in tests.
type Engine struct {
	store  store.Store
	scorer *scoring.Engine
	rules  *rules.Table
	now    func() time.Time
}

// New builds an engine. A nil clock defaults to UTC wall time.
func New(st store.Store, scorer *scoring.Engine, tbl *rules.Table, clock func() time.Time) *Engine {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{store: st, scorer: scorer, rules: tbl, now: clock}
}

// Rules exposes the jurisdiction table for read-side callers.
func (e *Engine) Rules() *rules.Table {
	return e.rules
}

// score runs a full pass and derives the issue list.
func (e *Engine) score(facts model.DealFacts, rule model.StateRule, now time.Time) (model.ScoreResult, error) {
	res, err := e.scorer.Score(facts, rule, now)
	if err != nil {
		return model.ScoreResult{}, err
	}
	res.Issues = issues.Generate(res.Dimensions)
	return res, nil
}

// buildDeal scores the facts and shapes a fresh not_submitted deal with its
// disclosure deadline computed from the jurisdiction rule. Nothing persists.
func (e *Engine) buildDeal(facts model.DealFacts, now time.Time) (model.Deal, error) {
	rule, _ := e.rules.Lookup(facts.Jurisdiction)

	res, err := e.score(facts, rule, now)
	if err != nil {
		return model.Deal{}, err
	}

	info := deadline.Compute(rule, facts.StartDate, now)
	return model.Deal{
		ID:             uuid.New().String(),
		Facts:          facts,
		Dimensions:     res.Dimensions,
		OverallScore:   res.OverallScore,
		Status:         res.Status,
		PayForPlayRisk: res.PayForPlayRisk,
		Issues:         res.Issues,
		Submission: model.SubmissionRecord{
			State:    model.StateNotSubmitted,
			Deadline: info.Date,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CreateDeal scores the facts and persists a new deal in not_submitted.
func (e *Engine) CreateDeal(ctx context.Context, facts model.DealFacts) (*model.Deal, error) {
	deal, err := e.buildDeal(facts, e.now())
	if err != nil {
		return nil, eris.Wrap(err, "engine: create deal")
	}

	if err := e.store.CreateDeal(ctx, deal); err != nil {
		return nil, eris.Wrap(err, "engine: create deal")
	}
	zap.L().Info("engine: deal created",
		zap.String("deal_id", deal.ID),
		zap.String("athlete_id", facts.AthleteID),
		zap.Int("overall", deal.OverallScore),
		zap.String("status", string(deal.Status)))
	return &deal, nil
}

// GetDeal fetches one deal.
func (e *Engine) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	return e.store.GetDeal(ctx, id)
}

// ListDeals lists deals by filter.
func (e *Engine) ListDeals(ctx context.Context, filter store.DealFilter) ([]model.Deal, error) {
	return e.store.ListDeals(ctx, filter)
}

// ListEvents returns the audit trail for a deal in chronological order.
func (e *Engine) ListEvents(ctx context.Context, dealID string) ([]model.SubmissionEvent, error) {
	return e.store.ListEvents(ctx, dealID)
}

// RescoreDeal reruns the scoring pass against current facts and rules and
// persists the refreshed score. The write is guarded on the deal's current
// state so a concurrent transition loses nothing.
func (e *Engine) RescoreDeal(ctx context.Context, id string) (*model.Deal, error) {
	deal, err := e.store.GetDeal(ctx, id)
	if err != nil {
		return nil, eris.Wrap(err, "engine: rescore")
	}
	now := e.now()
	rule, _ := e.rules.Lookup(deal.Facts.Jurisdiction)

	res, err := e.score(deal.Facts, rule, now)
	if err != nil {
		return nil, eris.Wrap(err, "engine: rescore")
	}

	expected := deal.Submission.State
	deal.Dimensions = res.Dimensions
	deal.OverallScore = res.OverallScore
	deal.Status = res.Status
	deal.PayForPlayRisk = res.PayForPlayRisk
	deal.Issues = res.Issues
	deal.UpdatedAt = now

	if err := e.store.UpdateDeal(ctx, *deal, expected); err != nil {
		return nil, eris.Wrap(err, "engine: rescore")
	}
	return deal, nil
}

// ComputeDeadline returns the current deadline view for a deal.
func (e *Engine) ComputeDeadline(ctx context.Context, id string) (deadline.Info, error) {
	deal, err := e.store.GetDeal(ctx, id)
	if err != nil {
		return deadline.Info{}, eris.Wrap(err, "engine: deadline")
	}
	rule, _ := e.rules.Lookup(deal.Facts.Jurisdiction)
	return deadline.Compute(rule, deal.Facts.StartDate, e.now()), nil
}
