package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/nil-compliance/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS deals (
	id               TEXT PRIMARY KEY,
	athlete_id       TEXT NOT NULL,
	jurisdiction     TEXT NOT NULL,
	submission_state TEXT NOT NULL DEFAULT 'not_submitted',
	status           TEXT NOT NULL,
	overall_score    INTEGER NOT NULL,
	doc              TEXT NOT NULL,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS submission_events (
	id         TEXT PRIMARY KEY,
	deal_id    TEXT NOT NULL REFERENCES deals(id),
	action     TEXT NOT NULL,
	from_state TEXT NOT NULL,
	to_state   TEXT NOT NULL,
	actor      TEXT,
	notes      TEXT,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS state_rules (
	code TEXT PRIMARY KEY,
	doc  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_athlete_id ON deals(athlete_id);
CREATE INDEX IF NOT EXISTS idx_deals_submission_state ON deals(submission_state);
CREATE INDEX IF NOT EXISTS idx_submission_events_deal_id ON submission_events(deal_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateDeal(ctx context.Context, deal model.Deal) error {
	doc, err := json.Marshal(deal)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal deal")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deals (id, athlete_id, jurisdiction, submission_state, status, overall_score, doc, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.Facts.AthleteID, deal.Facts.Jurisdiction, string(deal.Submission.State),
		string(deal.Status), deal.OverallScore, string(doc), deal.CreatedAt, deal.UpdatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert deal %s", deal.ID)
}

func (s *SQLiteStore) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT doc FROM deals WHERE id = ?`, id)

	var doc string
	err := row.Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get deal %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get deal %s", id)
	}
	return unmarshalDeal(doc)
}

func (s *SQLiteStore) ListDeals(ctx context.Context, filter DealFilter) ([]model.Deal, error) {
	query := `SELECT doc FROM deals WHERE 1=1`
	var args []any

	if filter.AthleteID != "" {
		query += ` AND athlete_id = ?`
		args = append(args, filter.AthleteID)
	}
	if filter.State != "" {
		query += ` AND submission_state = ?`
		args = append(args, string(filter.State))
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list deals")
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan deal")
		}
		d, err := unmarshalDeal(doc)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *d)
	}
	return deals, eris.Wrap(rows.Err(), "sqlite: list deals iterate")
}

// UpdateDeal writes the deal only if the stored submission state still
// matches expectedState. Zero rows means either a concurrent transition or
// a missing deal; the follow-up read disambiguates.
func (s *SQLiteStore) UpdateDeal(ctx context.Context, deal model.Deal, expectedState model.SubmissionState) error {
	doc, err := json.Marshal(deal)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal deal")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE deals SET submission_state = ?, status = ?, overall_score = ?, doc = ?, updated_at = ?
		 WHERE id = ? AND submission_state = ?`,
		string(deal.Submission.State), string(deal.Status), deal.OverallScore, string(doc),
		deal.UpdatedAt, deal.ID, string(expectedState),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update deal %s", deal.ID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return s.staleOrMissing(ctx, deal.ID)
	}
	return nil
}

// staleOrMissing distinguishes an OCC conflict from a missing deal after a
// guarded update matched nothing.
func (s *SQLiteStore) staleOrMissing(ctx context.Context, id string) error {
	var current string
	err := s.db.QueryRowContext(ctx, `SELECT submission_state FROM deals WHERE id = ?`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return eris.Wrapf(ErrNotFound, "sqlite: update deal %s", id)
	}
	if err != nil {
		return eris.Wrapf(err, "sqlite: update deal %s", id)
	}
	return model.NewStaleState(model.SubmissionState(current), "deal was modified concurrently, refetch and retry")
}

func (s *SQLiteStore) AppendEvent(ctx context.Context, ev model.SubmissionEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submission_events (id, deal_id, action, from_state, to_state, actor, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.DealID, ev.Action, ev.FromState, ev.ToState, ev.Actor, ev.Notes, ev.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert event for deal %s", ev.DealID)
}

func (s *SQLiteStore) ListEvents(ctx context.Context, dealID string) ([]model.SubmissionEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deal_id, action, from_state, to_state, actor, notes, created_at
		 FROM submission_events WHERE deal_id = ? ORDER BY created_at ASC, id ASC`,
		dealID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list events for deal %s", dealID)
	}
	defer rows.Close()

	var events []model.SubmissionEvent
	for rows.Next() {
		var ev model.SubmissionEvent
		var actor, notes sql.NullString
		if err := rows.Scan(&ev.ID, &ev.DealID, &ev.Action, &ev.FromState, &ev.ToState, &actor, &notes, &ev.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan event")
		}
		ev.Actor = actor.String
		ev.Notes = notes.String
		events = append(events, ev)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: list events iterate")
}

// ReplaceRules swaps the persisted jurisdiction rule set in one transaction.
func (s *SQLiteStore) ReplaceRules(ctx context.Context, list []model.StateRule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin rules tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM state_rules`); err != nil {
		return eris.Wrap(err, "sqlite: clear rules")
	}
	for _, r := range list {
		doc, err := json.Marshal(r)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal rule")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state_rules (code, doc) VALUES (?, ?)`, r.Code, string(doc)); err != nil {
			return eris.Wrapf(err, "sqlite: insert rule %s", r.Code)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit rules tx")
}

func (s *SQLiteStore) LoadRules(ctx context.Context) ([]model.StateRule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM state_rules ORDER BY code`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load rules")
	}
	defer rows.Close()

	var list []model.StateRule
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan rule")
		}
		var r model.StateRule
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal rule")
		}
		list = append(list, r)
	}
	return list, eris.Wrap(rows.Err(), "sqlite: load rules iterate")
}

// helpers

func unmarshalDeal(doc string) (*model.Deal, error) {
	var d model.Deal
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal deal")
	}
	return &d, nil
}
