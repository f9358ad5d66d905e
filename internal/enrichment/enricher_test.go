package enrichment

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/department-enricher/internal/domain"
)

func newTestEnricher(t *testing.T) *DepartmentEnricher {
	t.Helper()
	e, err := NewDepartmentEnricher("key_name")
	require.NoError(t, err)
	return e
}

func TestNewDepartmentEnricher_EmptyKey(t *testing.T) {
	_, err := NewDepartmentEnricher("")
	assert.Error(t, err)
}

func TestEnrich_Mapping(t *testing.T) {
	e := newTestEnricher(t)

	out, err := e.Enrich([]domain.Document{{"key_name": "<D10>"}})
	require.NoError(t, err)
	require.Len(t, out, 1)

	dept, ok := out[0].Department()
	require.True(t, ok)
	assert.Equal(t, "DWP", dept)
}

// knownDepartments is the collector's department table, listed in code order.
var knownDepartments = []domain.Department{
	{Code: "<D1>", Abbreviation: "AGO"},
	{Code: "<D2>", Abbreviation: "CO"},
	{Code: "<D3>", Abbreviation: "BIS"},
	{Code: "<D4>", Abbreviation: "DCLG"},
	{Code: "<D5>", Abbreviation: "DCMS"},
	{Code: "<D6>", Abbreviation: "DfE"},
	{Code: "<D7>", Abbreviation: "Defra"},
	{Code: "<D8>", Abbreviation: "DFID"},
	{Code: "<D9>", Abbreviation: "DFT"},
	{Code: "<D10>", Abbreviation: "DWP"},
	{Code: "<D11>", Abbreviation: "DECC"},
	{Code: "<D12>", Abbreviation: "DH"},
	{Code: "<D13>", Abbreviation: "FCO"},
	{Code: "<D15>", Abbreviation: "HMT"},
	{Code: "<D16>", Abbreviation: "HO"},
	{Code: "<D17>", Abbreviation: "MOD"},
	{Code: "<D18>", Abbreviation: "MOJ"},
	{Code: "<D19>", Abbreviation: "NIO"},
	{Code: "<D20>", Abbreviation: "OAG"},
	{Code: "<D25>", Abbreviation: "HMRC"},
	{Code: "<D102>", Abbreviation: "FSA"},
	{Code: "<OT532>", Abbreviation: "No 10"},
	{Code: "<OT537>", Abbreviation: "ODPM"},
}

func TestEnrich_EveryKnownCode(t *testing.T) {
	e := newTestEnricher(t)
	require.Len(t, knownDepartments, 23)

	for _, want := range knownDepartments {
		t.Run(string(want.Code), func(t *testing.T) {
			out, err := e.Enrich([]domain.Document{{"key_name": string(want.Code)}})
			require.NoError(t, err)
			assert.Equal(t, want.Abbreviation, out[0][domain.DepartmentField])
		})
	}
}

func TestEnrich_TakesFirstCode(t *testing.T) {
	e := newTestEnricher(t)

	out, err := e.Enrich([]domain.Document{{"key_name": "<D10><D9>"}})
	require.NoError(t, err)
	assert.Equal(t, "DWP", out[0][domain.DepartmentField])

	out, err = e.Enrich([]domain.Document{{"key_name": "<D9><D10>"}})
	require.NoError(t, err)
	assert.Equal(t, "DFT", out[0][domain.DepartmentField])
}

func TestEnrich_UnknownCodePassesThrough(t *testing.T) {
	e := newTestEnricher(t)

	out, err := e.Enrich([]domain.Document{{"key_name": "<D30>"}})
	require.NoError(t, err)
	assert.Equal(t, "<D30>", out[0][domain.DepartmentField])
}

func TestEnrich_MissingKey(t *testing.T) {
	e := newTestEnricher(t)

	_, err := e.Enrich([]domain.Document{{"foo": "<D10>"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.False(t, errors.Is(err, ErrMalformedInput))

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, "key_name", docErr.Key)
}

func TestEnrich_MalformedValue(t *testing.T) {
	e := newTestEnricher(t)

	tests := []struct {
		name  string
		value any
	}{
		{"no brackets", "no-brackets-here"},
		{"leading text", "x<D10>"},
		{"empty token", "<>"},
		{"nested brackets", "<D1<D2>>"},
		{"unterminated", "<D10"},
		{"empty string", ""},
		{"not a string", 10},
		{"nil value", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Enrich([]domain.Document{{"key_name": tt.value}})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
		})
	}
}

func TestEnrich_FailsFastAtOffendingDocument(t *testing.T) {
	e := newTestEnricher(t)
	docs := []domain.Document{
		{"key_name": "<D1>"},
		{"key_name": "<D2>"},
		{"other": "<D3>"},
		{"key_name": "broken"},
	}

	out, err := e.Enrich(docs)
	require.Error(t, err)
	assert.Nil(t, out)

	var docErr *DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, 2, docErr.Index)
	assert.True(t, errors.Is(err, ErrPrecondition))

	// Earlier documents are left as they were.
	_, enriched := docs[0][domain.DepartmentField]
	assert.False(t, enriched)
}

func TestEnrich_PreservesOrderAndOtherFields(t *testing.T) {
	e := newTestEnricher(t)
	docs := []domain.Document{
		{"key_name": "<D10>", "title": "a", "count": 3},
		{"key_name": "<OT532><D1>", "title": "b", "nested": map[string]any{"x": 1}},
		{"key_name": "<D99>", "title": "c", "department": "stale"},
	}

	out, err := e.Enrich(docs)
	require.NoError(t, err)
	require.Len(t, out, len(docs))

	want := []string{"DWP", "No 10", "<D99>"}
	for i := range docs {
		assert.Equal(t, want[i], out[i][domain.DepartmentField])

		got := out[i].Clone()
		orig := docs[i].Clone()
		delete(got, domain.DepartmentField)
		delete(orig, domain.DepartmentField)
		if diff := cmp.Diff(orig, got); diff != "" {
			t.Errorf("document %d fields changed (-want +got):\n%s", i, diff)
		}
	}
}

func TestEnrich_Idempotent(t *testing.T) {
	e := newTestEnricher(t)
	docs := []domain.Document{{"key_name": "<D25><D1>"}, {"key_name": "<X1>"}}

	first, err := e.Enrich(docs)
	require.NoError(t, err)
	second, err := e.Enrich(first)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass changed documents (-first +second):\n%s", diff)
	}
}

func TestEnrich_EmptyBatch(t *testing.T) {
	e := newTestEnricher(t)

	out, err := e.Enrich(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEnrichValid_ReportsRejectedDocuments(t *testing.T) {
	e := newTestEnricher(t)
	docs := []domain.Document{
		{"key_name": "<D1>", "id": 1},
		{"other": "<D2>", "id": 2},
		{"key_name": "<D30>", "id": 3},
		{"key_name": "broken", "id": 4},
	}

	out, rejected := e.EnrichValid(docs)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0]["id"])
	assert.Equal(t, "AGO", out[0][domain.DepartmentField])
	assert.Equal(t, 3, out[1]["id"])
	assert.Equal(t, "<D30>", out[1][domain.DepartmentField])

	require.Len(t, rejected, 2)
	assert.Equal(t, 1, rejected[0].Index)
	assert.True(t, errors.Is(rejected[0], ErrPrecondition))
	assert.Equal(t, 3, rejected[1].Index)
	assert.True(t, errors.Is(rejected[1], ErrMalformedInput))

	_, touched := docs[0][domain.DepartmentField]
	assert.False(t, touched)
}

func TestFirstCode(t *testing.T) {
	code, err := FirstCode("<D102> trailing text")
	require.NoError(t, err)
	assert.Equal(t, domain.DepartmentCode("<D102>"), code)
}

func TestDocumentError_Message(t *testing.T) {
	err := &DocumentError{Index: 4, Key: "codes", Err: ErrPrecondition}
	assert.Contains(t, err.Error(), "document 4")
	assert.Contains(t, err.Error(), `"codes"`)
}
