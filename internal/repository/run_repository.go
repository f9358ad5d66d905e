package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/department-enricher/internal/domain"
)

// RunRepository manages enrichment run audit records.
type RunRepository interface {
	Create(ctx context.Context, run *domain.EnrichmentRun) error
	ListRecent(ctx context.Context, limit int) ([]domain.EnrichmentRun, error)
}

type runRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository builds the postgres backed repository.
func NewRunRepository(pool *pgxpool.Pool) RunRepository {
	return &runRepository{pool: pool}
}

func (r *runRepository) Create(ctx context.Context, run *domain.EnrichmentRun) error {
	const query = `
        INSERT INTO enrichment_runs (id, key_name, policy, status, document_count, enriched_count, skipped_count, unknown_count, error)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		run.ID,
		run.KeyName,
		run.Policy,
		run.Status,
		run.DocumentCount,
		run.EnrichedCount,
		run.SkippedCount,
		run.UnknownCount,
		run.Error,
	).Scan(&run.CreatedAt)
}

func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]domain.EnrichmentRun, error) {
	const query = `
        SELECT id, key_name, policy, status, document_count, enriched_count, skipped_count, unknown_count, error, created_at
        FROM enrichment_runs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EnrichmentRun
	for rows.Next() {
		var run domain.EnrichmentRun
		if err := rows.Scan(
			&run.ID,
			&run.KeyName,
			&run.Policy,
			&run.Status,
			&run.DocumentCount,
			&run.EnrichedCount,
			&run.SkippedCount,
			&run.UnknownCount,
			&run.Error,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
