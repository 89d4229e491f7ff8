package engine

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/nil-compliance/internal/actioncenter"
	"github.com/sells-group/nil-compliance/internal/issues"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/resilience"
	"github.com/sells-group/nil-compliance/internal/store"
)

// BuildActionCenter computes the prioritized todo list for an athlete.
// Reminders come from the external scheduling collaborator; tax quarters are
// estimated from the athlete's non-rejected deal income for the current year.
func (e *Engine) BuildActionCenter(ctx context.Context, athleteID string, reminders []model.Reminder) ([]model.TodoItem, error) {
	deals, err := e.store.ListDeals(ctx, store.DealFilter{AthleteID: athleteID})
	if err != nil {
		return nil, eris.Wrap(err, "engine: action center")
	}
	now := e.now()

	quarters := actioncenter.EstimateQuarters(
		e.annualIncome(deals),
		e.scorer.Config().ReportingThreshold,
		now.Year(),
		now,
	)
	return actioncenter.Build(deals, quarters, reminders, e.rules, now), nil
}

// annualIncome sums compensation across deals that are still in play.
// Rejected deals pay nothing; a superseded deal's compensation lives on in
// its replacement.
func (e *Engine) annualIncome(deals []model.Deal) float64 {
	total := 0.0
	for _, d := range deals {
		if d.Submission.State == model.StateRejected || d.Submission.SupersededByDealID != "" {
			continue
		}
		total += d.Facts.Compensation
	}
	return total
}

// ProtectionSummary is the athlete-facing compliance overview.
type ProtectionSummary struct {
	AthleteID         string  `json:"athlete_id"`
	TotalDeals        int     `json:"total_deals"`
	Approved          int     `json:"approved"`
	PendingReview     int     `json:"pending_review"`
	NeedsAttention    int     `json:"needs_attention"`
	HighRisk          int     `json:"high_risk"`
	TotalCompensation float64 `json:"total_compensation"`
	// ProtectionScore is the average overall score across active deals,
	// zero when there are none.
	ProtectionScore int `json:"protection_score"`
}

// Summarize computes the protection summary for an athlete.
func (e *Engine) Summarize(ctx context.Context, athleteID string) (ProtectionSummary, error) {
	deals, err := e.store.ListDeals(ctx, store.DealFilter{AthleteID: athleteID})
	if err != nil {
		return ProtectionSummary{}, eris.Wrap(err, "engine: summarize")
	}

	sum := ProtectionSummary{AthleteID: athleteID}
	scoreTotal := 0
	active := 0
	for _, d := range deals {
		sum.TotalDeals++
		switch d.Submission.State {
		case model.StateApproved:
			sum.Approved++
		case model.StatePendingReview, model.StateResponseSubmitted, model.StateConditionsCompleted:
			sum.PendingReview++
		}
		if d.Status == model.StatusRed || issues.HasCritical(d.Issues) {
			sum.NeedsAttention++
		}
		if d.PayForPlayRisk == model.RiskHigh {
			sum.HighRisk++
		}
		if d.Submission.State != model.StateRejected && d.Submission.SupersededByDealID == "" {
			sum.TotalCompensation += d.Facts.Compensation
			scoreTotal += d.OverallScore
			active++
		}
	}
	if active > 0 {
		sum.ProtectionScore = scoreTotal / active
	}
	return sum, nil
}

// RescoreAll reruns scoring for every deal matching the filter, bounded by
// the given concurrency. A rescore that loses its guarded write to a
// concurrent review transition is retried against the fresh state. Per-deal
// failures abort the batch; deals already rescored stay rescored.
func (e *Engine) RescoreAll(ctx context.Context, filter store.DealFilter, concurrency int) (int, error) {
	deals, err := e.store.ListDeals(ctx, filter)
	if err != nil {
		return 0, eris.Wrap(err, "engine: rescore all")
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("rescore")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, d := range deals {
		d := d
		g.Go(func() error {
			return resilience.Do(ctx, retryCfg, func(ctx context.Context) error {
				_, err := e.RescoreDeal(ctx, d.ID)
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		return 0, eris.Wrap(err, "engine: rescore all")
	}
	zap.L().Info("engine: batch rescore complete", zap.Int("deals", len(deals)))
	return len(deals), nil
}
