// Package monitoring collects compliance-health metrics and raises alerts
// when disclosure deadlines slip or too many deals score red.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nil-compliance/internal/deadline"
	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/rules"
	"github.com/sells-group/nil-compliance/internal/store"
)

// MetricsSnapshot holds a point-in-time view of compliance health.
type MetricsSnapshot struct {
	// Deal counts by lifecycle state.
	DealsTotal         int `json:"deals_total"`
	DealsNotSubmitted  int `json:"deals_not_submitted"`
	DealsPendingReview int `json:"deals_pending_review"`
	DealsNeedsRevision int `json:"deals_needs_revision"`
	DealsApproved      int `json:"deals_approved"`
	DealsRejected      int `json:"deals_rejected"`

	// Disclosure deadline pressure across deals still awaiting submission.
	OverdueDisclosures int `json:"overdue_disclosures"`
	UrgentDisclosures  int `json:"urgent_disclosures"`

	// Score and risk distribution.
	RedDeals      int     `json:"red_deals"`
	HighRiskDeals int     `json:"high_risk_deals"`
	RedRate       float64 `json:"red_rate"`

	CollectedAt time.Time `json:"collected_at"`
}

// Collector gathers metrics from the deal store and the jurisdiction table.
type Collector struct {
	store store.Store
	rules *rules.Table
	now   func() time.Time
}

// NewCollector creates a metrics collector. A nil clock defaults to UTC
// wall time.
func NewCollector(st store.Store, tbl *rules.Table, clock func() time.Time) *Collector {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Collector{store: st, rules: tbl, now: clock}
}

// Collect gathers a snapshot over every deal in the store. Superseded deals
// are skipped: their replacement carries the live state.
func (c *Collector) Collect(ctx context.Context) (*MetricsSnapshot, error) {
	now := c.now()
	snap := &MetricsSnapshot{CollectedAt: now}

	deals, err := c.store.ListDeals(ctx, store.DealFilter{})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list deals")
	}

	for _, d := range deals {
		if d.Submission.SupersededByDealID != "" {
			continue
		}
		snap.DealsTotal++

		switch d.Submission.State {
		case model.StateNotSubmitted:
			snap.DealsNotSubmitted++
		case model.StatePendingReview, model.StateResponseSubmitted, model.StateConditionsCompleted:
			snap.DealsPendingReview++
		case model.StateNeedsRevision:
			snap.DealsNeedsRevision++
		case model.StateApproved:
			snap.DealsApproved++
		case model.StateRejected:
			snap.DealsRejected++
		}

		if d.Status == model.StatusRed {
			snap.RedDeals++
		}
		if d.PayForPlayRisk == model.RiskHigh {
			snap.HighRiskDeals++
		}

		// Deadline pressure only matters while the disclosure is still owed.
		if d.Submission.State == model.StateNotSubmitted || d.Submission.State == model.StateNeedsRevision {
			rule, _ := c.rules.Lookup(d.Facts.Jurisdiction)
			info := deadline.Compute(rule, d.Facts.StartDate, now)
			switch info.Bucket {
			case deadline.BucketOverdue:
				snap.OverdueDisclosures++
			case deadline.BucketUrgent:
				snap.UrgentDisclosures++
			}
		}
	}

	if snap.DealsTotal > 0 {
		snap.RedRate = float64(snap.RedDeals) / float64(snap.DealsTotal)
	}
	return snap, nil
}
