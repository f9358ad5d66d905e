package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/department-enricher/internal/domain"
)

const unknownCodesKey = "enricher:unknown_codes"

// UnknownCodeRepository tallies well-formed codes missing from the department mapping.
type UnknownCodeRepository interface {
	Increment(ctx context.Context, code domain.DepartmentCode, n int) error
	Top(ctx context.Context, limit int) ([]domain.UnknownCodeCount, error)
}

type unknownCodeRepository struct {
	client *redis.Client
}

// NewUnknownCodeRepository builds the redis backed repository.
func NewUnknownCodeRepository(client *redis.Client) UnknownCodeRepository {
	return &unknownCodeRepository{client: client}
}

func (r *unknownCodeRepository) Increment(ctx context.Context, code domain.DepartmentCode, n int) error {
	return r.client.ZIncrBy(ctx, unknownCodesKey, float64(n), string(code)).Err()
}

func (r *unknownCodeRepository) Top(ctx context.Context, limit int) ([]domain.UnknownCodeCount, error) {
	entries, err := r.client.ZRevRangeWithScores(ctx, unknownCodesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	result := make([]domain.UnknownCodeCount, 0, len(entries))
	for _, z := range entries {
		member, _ := z.Member.(string)
		result = append(result, domain.UnknownCodeCount{
			Code:  domain.DepartmentCode(member),
			Count: int64(z.Score),
		})
	}
	return result, nil
}
