package monitoring

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nil-compliance/internal/model"
	"github.com/sells-group/nil-compliance/internal/rules"
	"github.com/sells-group/nil-compliance/internal/store"
)

var collectNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "monitoring.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func seedDeal(t *testing.T, st store.Store, id string, mutate func(*model.Deal)) {
	t.Helper()
	deal := model.Deal{
		ID: id,
		Facts: model.DealFacts{
			AthleteID:       "ath-1",
			CounterpartName: "Hometown Autos",
			DealType:        model.DealSocialPost,
			Compensation:    1500,
			Jurisdiction:    "TX",
			StartDate:       collectNow.AddDate(0, 0, -1),
		},
		OverallScore:   88,
		Status:         model.StatusGreen,
		PayForPlayRisk: model.RiskLow,
		Submission: model.SubmissionRecord{
			State:    model.StateNotSubmitted,
			Deadline: collectNow.AddDate(0, 0, 6),
		},
		CreatedAt: collectNow,
		UpdatedAt: collectNow,
	}
	if mutate != nil {
		mutate(&deal)
	}
	require.NoError(t, st.CreateDeal(context.Background(), deal))
}

func TestCollector_EmptyStore(t *testing.T) {
	st := newTestStore(t)
	c := NewCollector(st, rules.New(rules.Seed()), func() time.Time { return collectNow })

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, snap.DealsTotal)
	assert.Zero(t, snap.RedRate)
	assert.Equal(t, collectNow, snap.CollectedAt)
}

func TestCollector_CountsByState(t *testing.T) {
	st := newTestStore(t)

	seedDeal(t, st, "d-1", nil)
	seedDeal(t, st, "d-2", func(d *model.Deal) {
		d.Submission.State = model.StatePendingReview
	})
	seedDeal(t, st, "d-3", func(d *model.Deal) {
		d.Submission.State = model.StateApproved
	})
	seedDeal(t, st, "d-4", func(d *model.Deal) {
		d.Submission.State = model.StateNeedsRevision
		d.Status = model.StatusRed
		d.PayForPlayRisk = model.RiskHigh
	})
	seedDeal(t, st, "d-5", func(d *model.Deal) {
		d.Submission.State = model.StateRejected
		d.Submission.SupersededByDealID = "d-6" // superseded: excluded
	})

	c := NewCollector(st, rules.New(rules.Seed()), func() time.Time { return collectNow })
	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, snap.DealsTotal)
	assert.Equal(t, 1, snap.DealsNotSubmitted)
	assert.Equal(t, 1, snap.DealsPendingReview)
	assert.Equal(t, 1, snap.DealsApproved)
	assert.Equal(t, 1, snap.DealsNeedsRevision)
	assert.Equal(t, 0, snap.DealsRejected)
	assert.Equal(t, 1, snap.RedDeals)
	assert.Equal(t, 1, snap.HighRiskDeals)
	assert.InDelta(t, 0.25, snap.RedRate, 0.001)
}

func TestCollector_DeadlinePressure(t *testing.T) {
	st := newTestStore(t)

	// TX window is 7 days. Started 10 days ago: overdue.
	seedDeal(t, st, "d-overdue", func(d *model.Deal) {
		d.Facts.StartDate = collectNow.AddDate(0, 0, -10)
	})
	// Started 6 days ago: 1 day left, urgent.
	seedDeal(t, st, "d-urgent", func(d *model.Deal) {
		d.Facts.StartDate = collectNow.AddDate(0, 0, -6)
	})
	// Approved deal past its window owes nothing.
	seedDeal(t, st, "d-approved", func(d *model.Deal) {
		d.Facts.StartDate = collectNow.AddDate(0, 0, -10)
		d.Submission.State = model.StateApproved
	})

	c := NewCollector(st, rules.New(rules.Seed()), func() time.Time { return collectNow })
	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, snap.OverdueDisclosures)
	assert.Equal(t, 1, snap.UrgentDisclosures)
}
