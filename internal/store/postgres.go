package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/nil-compliance/internal/db"
	"github.com/sells-group/nil-compliance/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot store operations.
var preparedStatements = map[string]string{
	"insert_deal": `INSERT INTO deals (id, athlete_id, jurisdiction, submission_state, status, overall_score, doc, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
	"get_deal":    `SELECT doc FROM deals WHERE id = $1`,
	"update_deal": `UPDATE deals SET submission_state = $1, status = $2, overall_score = $3, doc = $4, updated_at = $5 WHERE id = $6 AND submission_state = $7`,
	"insert_event": `INSERT INTO submission_events (id, deal_id, action, from_state, to_state, actor, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	"list_events":  `SELECT id, deal_id, action, from_state, to_state, actor, notes, created_at FROM submission_events WHERE deal_id = $1 ORDER BY created_at ASC, id ASC`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need direct
// query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS deals (
	id               TEXT PRIMARY KEY,
	athlete_id       TEXT NOT NULL,
	jurisdiction     TEXT NOT NULL,
	submission_state TEXT NOT NULL DEFAULT 'not_submitted',
	status           TEXT NOT NULL,
	overall_score    INTEGER NOT NULL,
	doc              JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS submission_events (
	id         TEXT PRIMARY KEY,
	deal_id    TEXT NOT NULL REFERENCES deals(id),
	action     TEXT NOT NULL,
	from_state TEXT NOT NULL,
	to_state   TEXT NOT NULL,
	actor      TEXT,
	notes      TEXT,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS state_rules (
	code TEXT PRIMARY KEY,
	doc  JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_athlete_id ON deals(athlete_id);
CREATE INDEX IF NOT EXISTS idx_deals_submission_state ON deals(submission_state);
CREATE INDEX IF NOT EXISTS idx_submission_events_deal_id ON submission_events(deal_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateDeal(ctx context.Context, deal model.Deal) error {
	doc, err := json.Marshal(deal)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal deal")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO deals (id, athlete_id, jurisdiction, submission_state, status, overall_score, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		deal.ID, deal.Facts.AthleteID, deal.Facts.Jurisdiction, string(deal.Submission.State),
		string(deal.Status), deal.OverallScore, doc, deal.CreatedAt, deal.UpdatedAt,
	)
	return eris.Wrapf(err, "postgres: insert deal %s", deal.ID)
}

func (s *PostgresStore) GetDeal(ctx context.Context, id string) (*model.Deal, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM deals WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get deal %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get deal %s", id)
	}

	var d model.Deal
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal deal")
	}
	return &d, nil
}

func (s *PostgresStore) ListDeals(ctx context.Context, filter DealFilter) ([]model.Deal, error) {
	query := `SELECT doc FROM deals WHERE 1=1`
	var args []any

	if filter.AthleteID != "" {
		args = append(args, filter.AthleteID)
		query += ` AND athlete_id = $` + itoa(len(args))
	}
	if filter.State != "" {
		args = append(args, string(filter.State))
		query += ` AND submission_state = $` + itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $` + itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list deals")
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan deal")
		}
		var d model.Deal
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal deal")
		}
		deals = append(deals, d)
	}
	return deals, eris.Wrap(rows.Err(), "postgres: list deals iterate")
}

func (s *PostgresStore) UpdateDeal(ctx context.Context, deal model.Deal, expectedState model.SubmissionState) error {
	doc, err := json.Marshal(deal)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal deal")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE deals SET submission_state = $1, status = $2, overall_score = $3, doc = $4, updated_at = $5
		 WHERE id = $6 AND submission_state = $7`,
		string(deal.Submission.State), string(deal.Status), deal.OverallScore, doc,
		deal.UpdatedAt, deal.ID, string(expectedState),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update deal %s", deal.ID)
	}
	if tag.RowsAffected() == 0 {
		return s.staleOrMissing(ctx, deal.ID)
	}
	return nil
}

func (s *PostgresStore) staleOrMissing(ctx context.Context, id string) error {
	var current string
	err := s.pool.QueryRow(ctx, `SELECT submission_state FROM deals WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return eris.Wrapf(ErrNotFound, "postgres: update deal %s", id)
	}
	if err != nil {
		return eris.Wrapf(err, "postgres: update deal %s", id)
	}
	return model.NewStaleState(model.SubmissionState(current), "deal was modified concurrently, refetch and retry")
}

func (s *PostgresStore) AppendEvent(ctx context.Context, ev model.SubmissionEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO submission_events (id, deal_id, action, from_state, to_state, actor, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.ID, ev.DealID, ev.Action, ev.FromState, ev.ToState, ev.Actor, ev.Notes, ev.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert event for deal %s", ev.DealID)
}

func (s *PostgresStore) ListEvents(ctx context.Context, dealID string) ([]model.SubmissionEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, deal_id, action, from_state, to_state, actor, notes, created_at
		 FROM submission_events WHERE deal_id = $1 ORDER BY created_at ASC, id ASC`,
		dealID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list events for deal %s", dealID)
	}
	defer rows.Close()

	var events []model.SubmissionEvent
	for rows.Next() {
		var ev model.SubmissionEvent
		var actor, notes *string
		if err := rows.Scan(&ev.ID, &ev.DealID, &ev.Action, &ev.FromState, &ev.ToState, &actor, &notes, &ev.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan event")
		}
		if actor != nil {
			ev.Actor = *actor
		}
		if notes != nil {
			ev.Notes = *notes
		}
		events = append(events, ev)
	}
	return events, eris.Wrap(rows.Err(), "postgres: list events iterate")
}

// ReplaceRules swaps the jurisdiction rule set wholesale in one transaction;
// rules absent from list are removed, so a stale rule never survives a load.
func (s *PostgresStore) ReplaceRules(ctx context.Context, list []model.StateRule) error {
	rows := make([][]any, 0, len(list))
	for _, r := range list {
		doc, err := json.Marshal(r)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal rule")
		}
		rows = append(rows, []any{r.Code, doc})
	}

	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "state_rules",
		Columns:      []string{"code", "doc"},
		ConflictKeys: []string{"code"},
		PruneMissing: true,
	}, rows)
	return eris.Wrap(err, "postgres: replace rules")
}

func (s *PostgresStore) LoadRules(ctx context.Context) ([]model.StateRule, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM state_rules ORDER BY code`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load rules")
	}
	defer rows.Close()

	var list []model.StateRule
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan rule")
		}
		var r model.StateRule
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal rule")
		}
		list = append(list, r)
	}
	return list, eris.Wrap(rows.Err(), "postgres: load rules iterate")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
