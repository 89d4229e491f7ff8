package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nil-compliance/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_GetDeal_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT doc FROM deals WHERE id = \$1`).
		WithArgs("missing-deal").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetDeal(context.Background(), "missing-deal")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateDeal(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	deal := testDeal("ath-1")

	mock.ExpectExec(`INSERT INTO deals`).
		WithArgs(deal.ID, "ath-1", "TX", "not_submitted", "green", 88,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.CreateDeal(context.Background(), deal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateDeal_StaleState(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	deal := testDeal("ath-1")
	deal.Submission.State = model.StateApproved

	mock.ExpectExec(`UPDATE deals SET submission_state`).
		WithArgs("approved", "green", 88, pgxmock.AnyArg(), pgxmock.AnyArg(),
			deal.ID, "pending_review").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT submission_state FROM deals WHERE id = \$1`).
		WithArgs(deal.ID).
		WillReturnRows(pgxmock.NewRows([]string{"submission_state"}).AddRow("needs_revision"))

	err := s.UpdateDeal(context.Background(), deal, model.StatePendingReview)
	require.Error(t, err)
	assert.Equal(t, model.KindStaleState, model.KindOf(err))

	var e *model.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, model.StateNeedsRevision, e.CurrentState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateDeal_Missing(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	deal := testDeal("ath-1")

	mock.ExpectExec(`UPDATE deals SET submission_state`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), deal.ID, "not_submitted").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT submission_state FROM deals WHERE id = \$1`).
		WithArgs(deal.ID).
		WillReturnError(pgx.ErrNoRows)

	err := s.UpdateDeal(context.Background(), deal, model.StateNotSubmitted)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendEvent_AssignsID(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO submission_events`).
		WithArgs(pgxmock.AnyArg(), "deal-1", "submit", "not_submitted", "pending_review",
			"ath-1", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.AppendEvent(context.Background(), model.SubmissionEvent{
		DealID:    "deal-1",
		Action:    "submit",
		FromState: "not_submitted",
		ToState:   "pending_review",
		Actor:     "ath-1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListDeals_BuildsFilterQuery(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	doc := []byte(`{"id":"d1","facts":{"athlete_id":"ath-1","counterpart_name":"X","jurisdiction":"TX"}}`)

	mock.ExpectQuery(`SELECT doc FROM deals WHERE 1=1 AND athlete_id = \$1 AND submission_state = \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("ath-1", "pending_review", 100).
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).AddRow(doc))

	got, err := s.ListDeals(context.Background(), DealFilter{
		AthleteID: "ath-1",
		State:     model.StatePendingReview,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceRules_PrunesRemovedRules(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	// A rule dropped from the incoming set must not survive the replace.
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_state_rules"}, []string{"code", "doc"}).WillReturnResult(1)
	mock.ExpectExec(`INSERT INTO "state_rules"`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM "state_rules" WHERE \("code"\) NOT IN`).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := s.ReplaceRules(context.Background(), []model.StateRule{
		{Code: "TX", Name: "Texas", NILPermitted: true, DisclosureDeadlineDays: 7},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
