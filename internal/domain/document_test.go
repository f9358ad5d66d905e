package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Clone(t *testing.T) {
	orig := Document{"a": 1, "b": "x"}
	clone := orig.Clone()
	clone["a"] = 2
	clone[DepartmentField] = "DWP"

	assert.Equal(t, 1, orig["a"])
	_, ok := orig.Department()
	assert.False(t, ok)

	dept, ok := clone.Department()
	assert.True(t, ok)
	assert.Equal(t, "DWP", dept)

	assert.Nil(t, Document(nil).Clone())
}

func TestErrorPolicy_Valid(t *testing.T) {
	assert.True(t, ErrorPolicyAbort.Valid())
	assert.True(t, ErrorPolicySkip.Valid())
	assert.False(t, ErrorPolicy("retry").Valid())
}
