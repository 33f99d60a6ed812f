package spam

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists spam reports and their per-phone aggregate in
// PostgreSQL. The aggregate row is maintained with an atomic
// INSERT ... ON CONFLICT increment inside the same transaction as the report
// insert, so concurrent reporters cannot lose updates.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed spam store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Mark records a report for (reporter, phone). Re-marking is a no-op that
// leaves the aggregate untouched.
func (s *PostgresStore) Mark(ctx context.Context, reporterID, targetPhone string) (MarkResult, error) {
	reporter, err := uuid.Parse(reporterID)
	if err != nil {
		return MarkResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return MarkResult{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	now := time.Now().UTC()

	cmd, err := tx.Exec(ctx, `INSERT INTO spam_reports (id, reporter_id, target_phone, reported_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (reporter_id, target_phone) DO NOTHING`,
		uuid.New(), reporter, targetPhone, now)
	if err != nil {
		return MarkResult{}, err
	}

	if cmd.RowsAffected() == 0 {
		var count int
		err := tx.QueryRow(ctx, `SELECT report_count FROM spam_stats WHERE target_phone = $1`, targetPhone).Scan(&count)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return MarkResult{}, err
		}
		if err := tx.Commit(ctx); err != nil {
			return MarkResult{}, err
		}
		return MarkResult{Created: false, ReportCount: count}, nil
	}

	var count int
	err = tx.QueryRow(ctx, `INSERT INTO spam_stats (target_phone, report_count, last_reported_at)
        VALUES ($1, 1, $2)
        ON CONFLICT (target_phone) DO UPDATE SET
            report_count = spam_stats.report_count + 1,
            last_reported_at = EXCLUDED.last_reported_at
        RETURNING report_count`, targetPhone, now).Scan(&count)
	if err != nil {
		return MarkResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return MarkResult{}, err
	}

	return MarkResult{Created: true, ReportCount: count}, nil
}

// Count returns the aggregate report count for phone, 0 when unreported.
func (s *PostgresStore) Count(ctx context.Context, phone string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT report_count FROM spam_stats WHERE target_phone = $1`, phone).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
