package dto

import (
	"time"

	"github.com/spec-kit/department-enricher/internal/domain"
)

// EnrichRequest payload. KeyName and OnError fall back to server configuration.
type EnrichRequest struct {
	KeyName   string             `json:"key_name"`
	OnError   domain.ErrorPolicy `json:"on_error"`
	Documents []domain.Document  `json:"documents"`
}

// SkippedDocument describes a document dropped under the skip policy.
type SkippedDocument struct {
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// EnrichResponse returns the enriched batch.
type EnrichResponse struct {
	RunID        string                    `json:"run_id"`
	Documents    []domain.Document         `json:"documents"`
	Skipped      []SkippedDocument         `json:"skipped"`
	UnknownCodes []domain.UnknownCodeCount `json:"unknown_codes"`
}

// RunSummary response.
type RunSummary struct {
	ID            string             `json:"id"`
	KeyName       string             `json:"key_name"`
	Policy        domain.ErrorPolicy `json:"policy"`
	Status        domain.RunStatus   `json:"status"`
	DocumentCount int                `json:"document_count"`
	EnrichedCount int                `json:"enriched_count"`
	SkippedCount  int                `json:"skipped_count"`
	UnknownCount  int                `json:"unknown_count"`
	Error         *string            `json:"error,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
