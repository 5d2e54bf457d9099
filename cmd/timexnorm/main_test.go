package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/libtimex/annotation"
	"github.com/cyp0633/libtimex/rules"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decodeResult(t *testing.T, out string) result {
	t.Helper()

	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestRun(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join("testdata", "war.hujson"))
	require.NoError(t, err)

	res := decodeResult(t, out)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Timexes, 3)
	require.Len(t, res.Intervals, 2)

	composite := res.Intervals[0]
	assert.Equal(t, 20, composite.Begin)
	assert.Equal(t, 32, composite.End)
	assert.Equal(t, "P6Y", composite.EmptyValue)
	assert.Equal(t, "interval_from_to", composite.Rule)
	assert.Equal(t, "t1", composite.BeginAnchor)
	assert.Equal(t, "t2", composite.EndAnchor)
	assert.Equal(t, "1939-01-01T00:00:00", composite.EarliestBegin)
	assert.Equal(t, "1945-12-31T23:59:59", composite.LatestEnd)

	single := res.Intervals[1]
	assert.Equal(t, "t3", single.ID)
	assert.Equal(t, "s1", single.SentenceID)
	assert.Equal(t, "date_r0", single.Rule)
}

func TestRun_StageFlags(t *testing.T) {
	out, _, err := execute(t, "run", "--match-pairs=false", filepath.Join("testdata", "war.hujson"))
	require.NoError(t, err)
	assert.Len(t, decodeResult(t, out).Intervals, 3)
}

func TestRun_EnvOverrides(t *testing.T) {
	t.Setenv("TIMEXNORM_MATCH_PAIRS", "false")
	t.Setenv("TIMEXNORM_LOG_LEVEL", "debug")

	out, stderr, err := execute(t, "run", filepath.Join("testdata", "war.hujson"))
	require.NoError(t, err)
	assert.Len(t, decodeResult(t, out).Intervals, 3)
	assert.Contains(t, stderr, "document processed")
}

func TestRun_Errors(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join("testdata", "absent.json"))
	assert.Error(t, err)

	_, _, err = execute(t, "run", filepath.Join("testdata", "bad_span.json"))
	var aerr *annotation.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, annotation.ErrInvalidInput, aerr.Type)

	_, _, err = execute(t, "run", "--rules", filepath.Join("testdata", "broken_rules.yaml"), filepath.Join("testdata", "war.hujson"))
	assert.ErrorIs(t, err, rules.ErrInvalidRule)

	_, _, err = execute(t, "run", "--log-level", "loud", filepath.Join("testdata", "war.hujson"))
	assert.Error(t, err)

	_, _, err = execute(t, "run")
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	out, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	for _, r := range rules.Default() {
		assert.Contains(t, out, r.Name)
	}
	assert.Contains(t, out, "group(2)")

	_, _, err = execute(t, "rules", "--rules", filepath.Join("testdata", "broken_rules.yaml"))
	assert.ErrorIs(t, err, rules.ErrInvalidRule)
}
