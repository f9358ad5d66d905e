package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/department-enricher/internal/events"
	"github.com/spec-kit/department-enricher/internal/repository"
)

// AuditService reacts to enrichment events: it logs them and keeps the
// unknown code tally current.
type AuditService struct {
	dispatcher events.Dispatcher
	unknown    repository.UnknownCodeRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, unknown repository.UnknownCodeRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		unknown:    unknown,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventBatchEnriched, a.handleBatchEnriched)
	a.dispatcher.Subscribe(events.EventBatchFailed, a.handleBatchFailed)
	a.dispatcher.Subscribe(events.EventUnknownDepartmentCode, a.handleUnknownCode)
}

func (a *AuditService) handleBatchEnriched(_ context.Context, event events.Event) error {
	a.logger.Info("BatchEnriched", zap.String("run_id", event.RunID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleBatchFailed(_ context.Context, event events.Event) error {
	a.logger.Warn("BatchFailed", zap.String("run_id", event.RunID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleUnknownCode(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UnknownDepartmentCodePayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	a.logger.Debug("UnknownDepartmentCode",
		zap.String("run_id", event.RunID),
		zap.String("code", string(payload.Code)),
		zap.Int("count", payload.Count))
	if a.unknown == nil {
		return nil
	}
	return a.unknown.Increment(ctx, payload.Code, payload.Count)
}
