package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordAndSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/v1/enrich", "POST", 200, time.Millisecond)
	m.RecordRequest("/v1/enrich", "POST", 200, time.Millisecond)
	m.RecordError("/v1/enrich", "POST", "MALFORMED_INPUT")
	m.RecordBatch(10, 2, 1, false)
	m.RecordBatch(0, 0, 0, true)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Requests["/v1/enrich|POST|200"])
	assert.Equal(t, int64(1), s.Errors["/v1/enrich|POST|MALFORMED_INPUT"])
	assert.Equal(t, EnrichmentCounters{
		Batches:      2,
		FailedRuns:   1,
		Documents:    10,
		Skipped:      2,
		UnknownCodes: 1,
	}, s.Enrichment)

	s.Requests["/v1/enrich|POST|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/v1/enrich|POST|200"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	m.RecordBatch(1, 1, 1, true)
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
