package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	enrichment   EnrichmentCounters
}

// EnrichmentCounters tracks document level outcomes across batches.
type EnrichmentCounters struct {
	Batches      int64 `json:"batches"`
	FailedRuns   int64 `json:"failed_runs"`
	Documents    int64 `json:"documents"`
	Skipped      int64 `json:"skipped"`
	UnknownCodes int64 `json:"unknown_codes"`
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Requests   map[string]int64   `json:"requests"`
	Errors     map[string]int64   `json:"errors"`
	Enrichment EnrichmentCounters `json:"enrichment"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordBatch adds the outcome of one enrichment batch.
func (m *Metrics) RecordBatch(enriched, skipped, unknown int, failed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrichment.Batches++
	if failed {
		m.enrichment.FailedRuns++
	}
	m.enrichment.Documents += int64(enriched)
	m.enrichment.Skipped += int64(skipped)
	m.enrichment.UnknownCodes += int64(unknown)
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Requests:   make(map[string]int64, len(m.requestCount)),
		Errors:     make(map[string]int64, len(m.errorCount)),
		Enrichment: m.enrichment,
	}
	for k, v := range m.requestCount {
		s.Requests[k] = v
	}
	for k, v := range m.errorCount {
		s.Errors[k] = v
	}
	return s
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
