package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/department-enricher/internal/enrichment"
)

func execute(t *testing.T, stdin string, args ...string) ([]map[string]any, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "fatal"))

	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	return docs, nil
}

func TestEnrichCommand(t *testing.T) {
	docs, err := execute(t, `[{"codes":"<D10><D9>","n":1},{"codes":"<D30>"}]`, "--key", "codes")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "DWP", docs[0]["department"])
	assert.Equal(t, float64(1), docs[0]["n"])
	assert.Equal(t, "<D30>", docs[1]["department"])
}

func TestEnrichCommand_FailsOnMissingKey(t *testing.T) {
	_, err := execute(t, `[{"foo":"<D10>"}]`, "--key", "codes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, enrichment.ErrPrecondition))
}

func TestEnrichCommand_Skip(t *testing.T) {
	docs, err := execute(t, `[{"foo":"<D10>"},{"codes":"nope"},{"codes":"<D12>"}]`, "--key", "codes", "--skip")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "DH", docs[0]["department"])
}

func TestEnrichCommand_BadJSON(t *testing.T) {
	_, err := execute(t, `{not json`)
	assert.Error(t, err)
}
