package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/department-enricher/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBatchEnriched         EventType = "batch_enriched"
	EventBatchFailed           EventType = "batch_failed"
	EventUnknownDepartmentCode EventType = "unknown_department_code"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RunID     string      `json:"run_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh ID and the current time.
func New(eventType EventType, runID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// BatchEnrichedPayload payload.
type BatchEnrichedPayload struct {
	KeyName  string             `json:"key_name"`
	Policy   domain.ErrorPolicy `json:"policy"`
	Enriched int                `json:"enriched"`
	Skipped  int                `json:"skipped"`
}

// BatchFailedPayload payload.
type BatchFailedPayload struct {
	KeyName string `json:"key_name"`
	Index   int    `json:"index"`
	Reason  string `json:"reason"`
}

// UnknownDepartmentCodePayload payload. Count is the number of documents in
// the batch carrying the code.
type UnknownDepartmentCodePayload struct {
	Code  domain.DepartmentCode `json:"code"`
	Count int                   `json:"count"`
}
