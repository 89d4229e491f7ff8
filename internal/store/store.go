package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/nil-compliance/internal/model"
)

// ErrNotFound is returned when a deal id matches nothing. Callers test with
// eris.Is.
var ErrNotFound = eris.New("store: deal not found")

// DealFilter specifies criteria for listing deals.
type DealFilter struct {
	AthleteID string                `json:"athlete_id,omitempty"`
	State     model.SubmissionState `json:"state,omitempty"`
	Status    model.OverallStatus   `json:"status,omitempty"`
	Limit     int                   `json:"limit,omitempty"`
	Offset    int                   `json:"offset,omitempty"`
}

// Store defines persistence for deals and their audit trail.
//
// UpdateDeal is a guarded write: it only applies when the stored submission
// state still equals expectedState, and reports StaleState otherwise. That
// guard is the engine's optimistic concurrency control, so every state
// transition must go through it.
type Store interface {
	CreateDeal(ctx context.Context, deal model.Deal) error
	GetDeal(ctx context.Context, id string) (*model.Deal, error)
	ListDeals(ctx context.Context, filter DealFilter) ([]model.Deal, error)
	UpdateDeal(ctx context.Context, deal model.Deal, expectedState model.SubmissionState) error

	AppendEvent(ctx context.Context, ev model.SubmissionEvent) error
	ListEvents(ctx context.Context, dealID string) ([]model.SubmissionEvent, error)

	ReplaceRules(ctx context.Context, list []model.StateRule) error
	LoadRules(ctx context.Context) ([]model.StateRule, error)

	Migrate(ctx context.Context) error
	Close() error
}
