package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/usecase/interfaces"
)

// PostgresSchema creates the three tables used by the Postgres store.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS aggregation_requests (
    id                   TEXT PRIMARY KEY,
    category             TEXT NOT NULL,
    payload              JSONB NOT NULL DEFAULT '{}'::jsonb,
    status               TEXT NOT NULL,
    dispatched_providers JSONB NOT NULL DEFAULT '[]'::jsonb,
    failure_reason       TEXT NOT NULL DEFAULT '',
    access_token         TEXT NOT NULL,
    created_at           TIMESTAMPTZ NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS provider_attempts (
    aggregation_request_id TEXT NOT NULL,
    provider_code          TEXT NOT NULL,
    outcome                TEXT NOT NULL,
    attempts               INTEGER NOT NULL,
    duration_ms            BIGINT NOT NULL,
    error_message          TEXT NOT NULL DEFAULT '',
    created_at             TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (aggregation_request_id, provider_code)
);
CREATE TABLE IF NOT EXISTS quote_responses (
    aggregation_request_id TEXT NOT NULL,
    provider_code          TEXT NOT NULL,
    price                  DOUBLE PRECISION NOT NULL,
    currency               TEXT NOT NULL,
    coverage_details       JSONB,
    raw_payload            TEXT NOT NULL DEFAULT '',
    breakdown              JSONB,
    received_at            TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (aggregation_request_id, provider_code)
);`

const pgUniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore implements the three repositories on a single *sql.DB opened
// with the pgx stdlib driver. Keyed creates use ON CONFLICT DO NOTHING and
// report ErrAlreadyExists when no row was inserted.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema applies PostgresSchema.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Requests() *PostgresAggregationRequestRepository {
	return &PostgresAggregationRequestRepository{db: s.db}
}

func (s *PostgresStore) Attempts() *PostgresProviderAttemptRepository {
	return &PostgresProviderAttemptRepository{db: s.db}
}

func (s *PostgresStore) Quotes() *PostgresQuoteResponseRepository {
	return &PostgresQuoteResponseRepository{db: s.db}
}

type PostgresAggregationRequestRepository struct{ db *sql.DB }

var _ interfaces.IAggregationRequestRepository = (*PostgresAggregationRequestRepository)(nil)

var aggregationColumns = []string{
	"id", "category", "payload", "status", "dispatched_providers",
	"failure_reason", "access_token", "created_at", "updated_at",
}

func insertAggregationRequest(r entities.AggregationRequest) (string, []any, error) {
	payload, err := json.Marshal(nonNilMap(r.Payload))
	if err != nil {
		return "", nil, fmt.Errorf("encode payload: %w", err)
	}
	dispatched, err := json.Marshal(nonNilStrings(r.DispatchedProviders))
	if err != nil {
		return "", nil, fmt.Errorf("encode dispatched providers: %w", err)
	}
	return psql.Insert("aggregation_requests").
		Columns(aggregationColumns...).
		Values(r.ID, r.Category, string(payload), string(r.Status), string(dispatched),
			r.FailureReason, r.AccessToken, r.CreatedAt.UTC(), r.UpdatedAt.UTC()).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
}

func (r *PostgresAggregationRequestRepository) Create(ctx context.Context, req entities.AggregationRequest) (entities.AggregationRequest, error) {
	query, args, err := insertAggregationRequest(req)
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	if err := execInsert(ctx, r.db, query, args); err != nil {
		return entities.AggregationRequest{}, err
	}
	return req, nil
}

func (r *PostgresAggregationRequestRepository) GetByID(ctx context.Context, id string) (entities.AggregationRequest, error) {
	query, args, err := psql.Select(aggregationColumns...).
		From("aggregation_requests").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	req, err := scanAggregationRequest(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.AggregationRequest{}, nil
	}
	return req, err
}

func (r *PostgresAggregationRequestRepository) MarkProcessing(ctx context.Context, id string, dispatched []string) (entities.AggregationRequest, error) {
	encoded, err := json.Marshal(nonNilStrings(dispatched))
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	return r.transition(ctx, id, entities.AggregationStatusPending, sq.Eq{
		"status":               string(entities.AggregationStatusProcessing),
		"dispatched_providers": string(encoded),
	})
}

func (r *PostgresAggregationRequestRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.transition(ctx, id, entities.AggregationStatusPending, sq.Eq{
		"status":         string(entities.AggregationStatusFailed),
		"failure_reason": reason,
	})
	return err
}

func (r *PostgresAggregationRequestRepository) MarkCompleted(ctx context.Context, id string) (bool, error) {
	updated, err := r.transition(ctx, id, entities.AggregationStatusProcessing, sq.Eq{
		"status": string(entities.AggregationStatusCompleted),
	})
	if err != nil {
		return false, err
	}
	return updated.ID != "", nil
}

func transitionQuery(id string, from entities.AggregationStatus, set sq.Eq, now time.Time) (string, []any, error) {
	cols := make([]string, 0, len(set))
	for col := range set {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	b := psql.Update("aggregation_requests")
	for _, col := range cols {
		b = b.Set(col, set[col])
	}
	b = b.Set("updated_at", now)
	return b.Where(sq.Eq{"id": id, "status": string(from)}).
		Suffix("RETURNING " + strings.Join(aggregationColumns, ", ")).
		ToSql()
}

func (r *PostgresAggregationRequestRepository) transition(ctx context.Context, id string, from entities.AggregationStatus, set sq.Eq) (entities.AggregationRequest, error) {
	query, args, err := transitionQuery(id, from, set, time.Now().UTC())
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	req, err := scanAggregationRequest(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.AggregationRequest{}, nil
	}
	return req, err
}

func scanAggregationRequest(row *sql.Row) (entities.AggregationRequest, error) {
	var (
		req                 entities.AggregationRequest
		status              string
		payload, dispatched []byte
	)
	if err := row.Scan(&req.ID, &req.Category, &payload, &status, &dispatched,
		&req.FailureReason, &req.AccessToken, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return entities.AggregationRequest{}, err
	}
	req.Status = entities.AggregationStatus(status)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req.Payload); err != nil {
			return entities.AggregationRequest{}, fmt.Errorf("decode payload: %w", err)
		}
	}
	if len(dispatched) > 0 {
		if err := json.Unmarshal(dispatched, &req.DispatchedProviders); err != nil {
			return entities.AggregationRequest{}, fmt.Errorf("decode dispatched providers: %w", err)
		}
	}
	return req, nil
}

type PostgresProviderAttemptRepository struct{ db *sql.DB }

var _ interfaces.IProviderAttemptRepository = (*PostgresProviderAttemptRepository)(nil)

var attemptColumns = []string{
	"aggregation_request_id", "provider_code", "outcome", "attempts",
	"duration_ms", "error_message", "created_at",
}

func (r *PostgresProviderAttemptRepository) Create(ctx context.Context, a entities.ProviderAttempt) error {
	query, args, err := psql.Insert("provider_attempts").
		Columns(attemptColumns...).
		Values(a.AggregationRequestID, a.ProviderCode, string(a.Outcome), a.Attempts,
			a.DurationMs, a.ErrorMessage, a.CreatedAt.UTC()).
		Suffix("ON CONFLICT (aggregation_request_id, provider_code) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	return execInsert(ctx, r.db, query, args)
}

func (r *PostgresProviderAttemptRepository) Get(ctx context.Context, requestID, providerCode string) (entities.ProviderAttempt, error) {
	query, args, err := psql.Select(attemptColumns...).
		From("provider_attempts").
		Where(sq.Eq{"aggregation_request_id": requestID, "provider_code": providerCode}).
		ToSql()
	if err != nil {
		return entities.ProviderAttempt{}, err
	}
	var a entities.ProviderAttempt
	var outcome string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&a.AggregationRequestID, &a.ProviderCode, &outcome,
		&a.Attempts, &a.DurationMs, &a.ErrorMessage, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ProviderAttempt{}, nil
	}
	if err != nil {
		return entities.ProviderAttempt{}, err
	}
	a.Outcome = entities.AttemptOutcome(outcome)
	return a, nil
}

func (r *PostgresProviderAttemptRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.ProviderAttempt, error) {
	query, args, err := psql.Select(attemptColumns...).
		From("provider_attempts").
		Where(sq.Eq{"aggregation_request_id": requestID}).
		OrderBy("provider_code").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	out := []entities.ProviderAttempt{}
	for rows.Next() {
		var a entities.ProviderAttempt
		var outcome string
		if err := rows.Scan(&a.AggregationRequestID, &a.ProviderCode, &outcome,
			&a.Attempts, &a.DurationMs, &a.ErrorMessage, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Outcome = entities.AttemptOutcome(outcome)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

type PostgresQuoteResponseRepository struct{ db *sql.DB }

var _ interfaces.IQuoteResponseRepository = (*PostgresQuoteResponseRepository)(nil)

var quoteColumns = []string{
	"aggregation_request_id", "provider_code", "price", "currency",
	"coverage_details", "raw_payload", "breakdown", "received_at",
}

func (r *PostgresQuoteResponseRepository) Create(ctx context.Context, q entities.QuoteResponse) error {
	coverage, err := json.Marshal(nonNilMap(q.CoverageDetails))
	if err != nil {
		return fmt.Errorf("encode coverage: %w", err)
	}
	var breakdown any
	if q.Breakdown != nil {
		b, err := json.Marshal(q.Breakdown)
		if err != nil {
			return fmt.Errorf("encode breakdown: %w", err)
		}
		breakdown = string(b)
	}
	query, args, err := psql.Insert("quote_responses").
		Columns(quoteColumns...).
		Values(q.AggregationRequestID, q.ProviderCode, q.Price, q.Currency,
			string(coverage), string(q.RawPayload), breakdown, q.ReceivedAt.UTC()).
		Suffix("ON CONFLICT (aggregation_request_id, provider_code) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	return execInsert(ctx, r.db, query, args)
}

func (r *PostgresQuoteResponseRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.QuoteResponse, error) {
	query, args, err := psql.Select(quoteColumns...).
		From("quote_responses").
		Where(sq.Eq{"aggregation_request_id": requestID}).
		OrderBy("provider_code").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	out := []entities.QuoteResponse{}
	for rows.Next() {
		var (
			q                   entities.QuoteResponse
			coverage, breakdown []byte
			raw                 string
		)
		if err := rows.Scan(&q.AggregationRequestID, &q.ProviderCode, &q.Price, &q.Currency,
			&coverage, &raw, &breakdown, &q.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if len(coverage) > 0 {
			if err := json.Unmarshal(coverage, &q.CoverageDetails); err != nil {
				return nil, fmt.Errorf("decode coverage: %w", err)
			}
		}
		if len(breakdown) > 0 {
			q.Breakdown = &entities.PriceBreakdown{}
			if err := json.Unmarshal(breakdown, q.Breakdown); err != nil {
				return nil, fmt.Errorf("decode breakdown: %w", err)
			}
		}
		if raw != "" {
			q.RawPayload = json.RawMessage(raw)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func execInsert(ctx context.Context, db *sql.DB, query string, args []any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return interfaces.ErrAlreadyExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrAlreadyExists
	}
	return nil
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
