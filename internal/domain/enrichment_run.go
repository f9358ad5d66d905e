package domain

import "time"

// ErrorPolicy decides what happens to a batch when a document violates the input contract.
type ErrorPolicy string

const (
	ErrorPolicyAbort ErrorPolicy = "abort"
	ErrorPolicySkip  ErrorPolicy = "skip"
)

// Valid reports whether the policy is a known value.
func (p ErrorPolicy) Valid() bool {
	return p == ErrorPolicyAbort || p == ErrorPolicySkip
}

// RunStatus captures the outcome of one enrichment batch.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusPartial   RunStatus = "partial"
	RunStatusFailed    RunStatus = "failed"
)

// EnrichmentRun is the audit record for one batch.
type EnrichmentRun struct {
	ID            string
	KeyName       string
	Policy        ErrorPolicy
	Status        RunStatus
	DocumentCount int
	EnrichedCount int
	SkippedCount  int
	UnknownCount  int
	Error         *string
	CreatedAt     time.Time
}

// UnknownCodeCount is a tally of a well-formed code missing from the mapping.
type UnknownCodeCount struct {
	Code  DepartmentCode `json:"code"`
	Count int64          `json:"count"`
}
