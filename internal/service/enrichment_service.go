package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/department-enricher/internal/config"
	"github.com/spec-kit/department-enricher/internal/domain"
	"github.com/spec-kit/department-enricher/internal/enrichment"
	"github.com/spec-kit/department-enricher/internal/events"
	"github.com/spec-kit/department-enricher/internal/observability"
	"github.com/spec-kit/department-enricher/internal/repository"
	apperrors "github.com/spec-kit/department-enricher/pkg/util/errorutil"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ErrDepartmentNotFound is returned when a code is absent from the mapping.
var ErrDepartmentNotFound = errors.New("department not found")

// EnrichmentService applies the department enricher to collector batches
// and keeps an audit trail of each run.
type EnrichmentService struct {
	runs       repository.RunRepository
	unknown    repository.UnknownCodeRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        config.EnrichmentConfig
}

// EnrichmentDependencies bundles collaborators for the enrichment service.
type EnrichmentDependencies struct {
	RunRepo         repository.RunRepository
	UnknownCodeRepo repository.UnknownCodeRepository
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
	Logger          *zap.Logger
}

// EnrichInput describes one batch. Empty KeyName and Policy fall back to
// configuration; KeyName is otherwise used exactly as given.
type EnrichInput struct {
	ClientID  string
	KeyName   string
	Policy    domain.ErrorPolicy
	Documents []domain.Document
}

// SkippedDocument reports a document dropped under the skip policy.
type SkippedDocument struct {
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// EnrichResult is the outcome of a successful batch.
type EnrichResult struct {
	RunID        string
	Documents    []domain.Document
	Skipped      []SkippedDocument
	UnknownCodes []domain.UnknownCodeCount
}

// NewEnrichmentService constructs the service.
func NewEnrichmentService(cfg config.EnrichmentConfig, deps EnrichmentDependencies) *EnrichmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrichmentService{
		runs:       deps.RunRepo,
		unknown:    deps.UnknownCodeRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// Enrich runs a batch through the department enricher. Under the abort
// policy the first contract violation is returned as a wrapped
// *enrichment.DocumentError; under skip the offending documents are left
// out of the result and listed in Skipped.
func (s *EnrichmentService) Enrich(ctx context.Context, input EnrichInput) (*EnrichResult, error) {
	keyName := input.KeyName
	if keyName == "" {
		keyName = s.cfg.DefaultKeyName
	}
	policy := input.Policy
	if policy == "" {
		policy = s.cfg.OnError
	}
	if !policy.Valid() {
		return nil, apperrors.NewValidationError("on_error must be abort or skip", map[string]any{"on_error": policy})
	}
	if s.cfg.MaxBatchSize > 0 && len(input.Documents) > s.cfg.MaxBatchSize {
		return nil, apperrors.NewValidationError("batch too large", map[string]any{
			"max_batch_size": s.cfg.MaxBatchSize,
			"documents":      len(input.Documents),
		})
	}

	enricher, err := enrichment.NewDepartmentEnricher(keyName)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	run := &domain.EnrichmentRun{
		ID:            uuid.NewString(),
		KeyName:       enricher.KeyName(),
		Policy:        policy,
		DocumentCount: len(input.Documents),
	}

	var (
		enriched []domain.Document
		skipped  []SkippedDocument
	)
	switch policy {
	case domain.ErrorPolicyAbort:
		enriched, err = enricher.Enrich(input.Documents)
		if err != nil {
			s.recordFailure(ctx, run, err)
			s.logger.Info("batch aborted",
				zap.String("run_id", run.ID),
				zap.String("client_id", input.ClientID),
				zap.Error(err))
			return nil, fmt.Errorf("enrich batch: %w", err)
		}
	case domain.ErrorPolicySkip:
		var rejected []*enrichment.DocumentError
		enriched, rejected = enricher.EnrichValid(input.Documents)
		for _, docErr := range rejected {
			skipped = append(skipped, SkippedDocument{Index: docErr.Index, Key: docErr.Key, Reason: docErr.Err.Error()})
		}
	}

	unknown := countUnknownCodes(keyName, enriched)

	run.EnrichedCount = len(enriched)
	run.SkippedCount = len(skipped)
	run.UnknownCount = sumCounts(unknown)
	run.Status = runStatus(run)
	s.saveRun(ctx, run)
	s.metrics.RecordBatch(run.EnrichedCount, run.SkippedCount, run.UnknownCount, false)
	s.logger.Info("batch enriched",
		zap.String("run_id", run.ID),
		zap.String("client_id", input.ClientID),
		zap.String("status", string(run.Status)),
		zap.Int("enriched", run.EnrichedCount),
		zap.Int("skipped", run.SkippedCount))

	s.publish(ctx, events.New(events.EventBatchEnriched, run.ID, events.BatchEnrichedPayload{
		KeyName:  keyName,
		Policy:   policy,
		Enriched: run.EnrichedCount,
		Skipped:  run.SkippedCount,
	}))
	for _, u := range unknown {
		s.publish(ctx, events.New(events.EventUnknownDepartmentCode, run.ID, events.UnknownDepartmentCodePayload{
			Code:  u.Code,
			Count: int(u.Count),
		}))
	}

	return &EnrichResult{
		RunID:        run.ID,
		Documents:    enriched,
		Skipped:      skipped,
		UnknownCodes: unknown,
	}, nil
}

// Departments lists the department mapping ordered by code.
func (s *EnrichmentService) Departments() []domain.Department {
	return enrichment.Departments()
}

// Department resolves a single code. The angle brackets are optional.
func (s *EnrichmentService) Department(code string) (domain.Department, error) {
	normalized := domain.DepartmentCode(code)
	if !strings.HasPrefix(code, "<") {
		normalized = domain.DepartmentCode("<" + code + ">")
	}
	abbr, ok := enrichment.LookupDepartment(normalized)
	if !ok {
		return domain.Department{}, ErrDepartmentNotFound
	}
	return domain.Department{Code: normalized, Abbreviation: abbr}, nil
}

// UnknownCodes returns the most frequently seen unmapped codes.
func (s *EnrichmentService) UnknownCodes(ctx context.Context, limit int) ([]domain.UnknownCodeCount, error) {
	return s.unknown.Top(ctx, clampLimit(limit))
}

// Runs lists recent enrichment runs, newest first.
func (s *EnrichmentService) Runs(ctx context.Context, limit int) ([]domain.EnrichmentRun, error) {
	return s.runs.ListRecent(ctx, clampLimit(limit))
}

func (s *EnrichmentService) recordFailure(ctx context.Context, run *domain.EnrichmentRun, err error) {
	msg := err.Error()
	run.Status = domain.RunStatusFailed
	run.Error = &msg
	s.saveRun(ctx, run)
	s.metrics.RecordBatch(0, 0, 0, true)

	payload := events.BatchFailedPayload{KeyName: run.KeyName, Reason: msg}
	var docErr *enrichment.DocumentError
	if errors.As(err, &docErr) {
		payload.Index = docErr.Index
		payload.Reason = docErr.Err.Error()
	}
	s.publish(ctx, events.New(events.EventBatchFailed, run.ID, payload))
}

// saveRun records the audit entry. Audit failures are logged and never
// fail the batch.
func (s *EnrichmentService) saveRun(ctx context.Context, run *domain.EnrichmentRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Warn("failed to record enrichment run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func (s *EnrichmentService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("run_id", event.RunID),
			zap.Error(err))
	}
}

// countUnknownCodes tallies leading codes that pass through unresolved, ordered by code.
func countUnknownCodes(keyName string, docs []domain.Document) []domain.UnknownCodeCount {
	counts := make(map[domain.DepartmentCode]int64)
	for _, doc := range docs {
		code, err := enrichment.FirstCode(doc[keyName])
		if err != nil {
			continue
		}
		if _, ok := enrichment.LookupDepartment(code); !ok {
			counts[code]++
		}
	}
	result := make([]domain.UnknownCodeCount, 0, len(counts))
	for code, n := range counts {
		result = append(result, domain.UnknownCodeCount{Code: code, Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

func sumCounts(counts []domain.UnknownCodeCount) int {
	total := 0
	for _, c := range counts {
		total += int(c.Count)
	}
	return total
}

func runStatus(run *domain.EnrichmentRun) domain.RunStatus {
	switch {
	case run.SkippedCount == 0:
		return domain.RunStatusSucceeded
	case run.EnrichedCount == 0:
		return domain.RunStatusFailed
	default:
		return domain.RunStatusPartial
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
