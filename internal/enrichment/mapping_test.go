package enrichment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLookupDepartment(t *testing.T) {
	abbr, ok := LookupDepartment("<OT537>")
	assert.True(t, ok)
	assert.Equal(t, "ODPM", abbr)

	_, ok = LookupDepartment("<D14>")
	assert.False(t, ok)
}

func TestResolveDepartment(t *testing.T) {
	assert.Equal(t, "HMRC", ResolveDepartment("<D25>"))
	assert.Equal(t, "<D14>", ResolveDepartment("<D14>"))
}

func TestDepartments_MatchesKnownTable(t *testing.T) {
	if diff := cmp.Diff(knownDepartments, Departments()); diff != "" {
		t.Errorf("department table mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, departmentMapping, len(knownDepartments))

	for _, want := range knownDepartments {
		abbr, ok := LookupDepartment(want.Code)
		assert.True(t, ok, want.Code)
		assert.Equal(t, want.Abbreviation, abbr, want.Code)
	}
}

func TestDepartments_ReturnsCopy(t *testing.T) {
	deps := Departments()
	deps[0].Abbreviation = "changed"

	abbr, _ := LookupDepartment(deps[0].Code)
	assert.Equal(t, "AGO", abbr)
}
