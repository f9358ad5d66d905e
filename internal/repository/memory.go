package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/department-enricher/internal/domain"
)

// Ensure the in-memory stores implement the interfaces.
var (
	_ RunRepository         = (*MemoryRunRepository)(nil)
	_ UnknownCodeRepository = (*MemoryUnknownCodeRepository)(nil)
)

// MemoryRunRepository keeps runs in process. Used when no postgres DSN is configured.
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs []domain.EnrichmentRun
}

// NewMemoryRunRepository creates an empty in-memory run store.
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{}
}

// Create stores a run, stamping CreatedAt.
func (r *MemoryRunRepository) Create(_ context.Context, run *domain.EnrichmentRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run.CreatedAt = time.Now().UTC()
	r.runs = append(r.runs, *run)
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (r *MemoryRunRepository) ListRecent(_ context.Context, limit int) ([]domain.EnrichmentRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.EnrichmentRun, 0, min(limit, len(r.runs)))
	for i := len(r.runs) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, r.runs[i])
	}
	return result, nil
}

// MemoryUnknownCodeRepository keeps unknown code tallies in process.
type MemoryUnknownCodeRepository struct {
	mu     sync.Mutex
	counts map[domain.DepartmentCode]int64
}

// NewMemoryUnknownCodeRepository creates an empty in-memory tally.
func NewMemoryUnknownCodeRepository() *MemoryUnknownCodeRepository {
	return &MemoryUnknownCodeRepository{counts: make(map[domain.DepartmentCode]int64)}
}

// Increment adds n to the code's tally.
func (r *MemoryUnknownCodeRepository) Increment(_ context.Context, code domain.DepartmentCode, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[code] += int64(n)
	return nil
}

// Top returns the limit most frequent codes. Ties are broken by code.
func (r *MemoryUnknownCodeRepository) Top(_ context.Context, limit int) ([]domain.UnknownCodeCount, error) {
	r.mu.Lock()
	result := make([]domain.UnknownCodeCount, 0, len(r.counts))
	for code, n := range r.counts {
		result = append(result, domain.UnknownCodeCount{Code: code, Count: n})
	}
	r.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Code > result[j].Code
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
