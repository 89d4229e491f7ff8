package scoring

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nil-compliance/internal/model"
)

// Engine runs the six dimension scorers and aggregates their results.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine validates the configuration and builds a scorer. An invalid
// weight profile is an error, never silently renormalized.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "scoring: invalid config")
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's scoring configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score runs a full scoring pass over the deal facts under the given
// jurisdiction rule. All six dimensions are always produced; a pass that
// cannot fill every slot fails rather than defaulting.
func (e *Engine) Score(facts model.DealFacts, rule model.StateRule, now time.Time) (model.ScoreResult, error) {
	if err := facts.Validate(); err != nil {
		return model.ScoreResult{}, eris.Wrap(err, "scoring: invalid deal facts")
	}

	w := e.cfg.Weights
	set := model.DimensionSet{
		PolicyFit:       scorePolicyFit(facts, rule, w.PolicyFit),
		DocumentHygiene: scoreDocumentHygiene(facts, e.cfg, w.DocumentHygiene),
		FMVVerification: scoreFMV(facts, e.cfg, w.FMVVerification),
		TaxReadiness:    scoreTaxReadiness(facts, e.cfg, w.TaxReadiness),
		BrandSafety:     scoreBrandSafety(facts, rule, e.cfg, w.BrandSafety),
		GuardianConsent: scoreGuardianConsent(facts, w.GuardianConsent),
	}
	if err := set.Validate(); err != nil {
		return model.ScoreResult{}, eris.Wrap(err, "scoring: dimension pass")
	}

	overall := weightedOverall(set)
	status := model.OverallStatusFromScore(overall)
	risk := payForPlayRisk(set, facts)

	zap.L().Debug("scoring: pass complete",
		zap.String("athlete_id", facts.AthleteID),
		zap.Int("overall", overall),
		zap.String("status", string(status)),
		zap.String("pay_for_play_risk", string(risk)))

	return model.ScoreResult{
		Dimensions:     set,
		OverallScore:   overall,
		Status:         status,
		PayForPlayRisk: risk,
		ScoredAt:       now,
	}, nil
}

// weightedOverall rounds the weighted sum to the nearest integer.
// With weights summing to 1.0 the result stays in [0,100].
func weightedOverall(set model.DimensionSet) int {
	sum := 0.0
	for _, r := range set.All() {
		sum += float64(r.Score) * r.Weight
	}
	return int(math.Round(sum))
}

// payForPlayRisk applies the decision table for disguised pay-for-play.
// The signal is independent of the weighted score: a deal can score yellow
// overall and still be high risk.
func payForPlayRisk(set model.DimensionSet, facts model.DealFacts) model.PayForPlayRisk {
	structural := facts.BoosterConnected || facts.PerformanceBased
	fmvCritical := set.FMVVerification.Status == model.DimensionCritical

	switch {
	case fmvCritical && structural:
		return model.RiskHigh
	case fmvCritical || structural:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// FailingDimensions lists the dimensions currently scored critical, worst
// first. Used to explain blocked submissions.
func FailingDimensions(set model.DimensionSet) []model.DimensionKey {
	var failing []model.DimensionKey
	for _, r := range set.All() {
		if r.Status == model.DimensionCritical {
			failing = append(failing, r.Key)
		}
	}
	return failing
}
