package tagger

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/libtimex/annotation"
	"github.com/cyp0633/libtimex/annotation/memory"
	"github.com/cyp0633/libtimex/internal/logging"
	"github.com/cyp0633/libtimex/pairing"
	"github.com/cyp0633/libtimex/resolver"
	"github.com/cyp0633/libtimex/rules"
	"github.com/cyp0633/libtimex/temponym"
)

const fairText = "The fair ran from Good Friday 2024 to Easter Monday 2024. The Wende came in 1989."

func newFairDocument(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.New(fairText)
	require.NoError(t, store.AddSentence(&annotation.Sentence{Span: annotation.Span{Begin: 0, End: 57}, ID: "s0"}))
	require.NoError(t, store.AddSentence(&annotation.Sentence{Span: annotation.Span{Begin: 58, End: 81}, ID: "s1"}))

	for _, tx := range []*annotation.Timex{
		annotation.NewMockTimex("t1", 18, 34, annotation.KindDate, "2024 funcDateCalc(EasterSunday(YEAR, -2))"),
		annotation.NewMockTimex("t2", 38, 56, annotation.KindDate, "2024 funcDateCalc(EasterSunday(YEAR, 1))"),
		annotation.NewMockTimex("t3", 62, 67, annotation.KindTemponym, "[1989-11-09, 1989-11-09, 1990-10-03, 1990-10-03]"),
		annotation.NewMockTimex("t4", 76, 80, annotation.KindDate, "1989"),
	} {
		require.NoError(t, store.AddTimex(tx))
	}
	return store
}

func TestTagger_Process(t *testing.T) {
	store := newFairDocument(t)

	tg, err := New(DefaultConfig, nil)
	require.NoError(t, err)
	report, err := tg.Process(context.Background(), store)
	require.NoError(t, err)

	want := Report{
		Resolver:  resolver.Stats{Examined: 2, Resolved: 2},
		Intervals: 3,
		Pairing:   pairing.Result{Sentences: 2, Created: 1, Removed: 2},
		Temponyms: temponym.Result{Extracted: 1, Removed: 1},
	}
	if diff := cmp.Diff(want, report, cmpopts.IgnoreFields(Report{}, "RunID")); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, report.RunID)

	timexes := store.Timexes()
	require.Len(t, timexes, 3)
	assert.Equal(t, "2024-03-29", timexes[0].Value)
	assert.Equal(t, "2024-04-01", timexes[1].Value)
	assert.Equal(t, "1989", timexes[2].Value)

	intervals := store.Intervals()
	require.Len(t, intervals, 3)

	fair := intervals[0]
	assert.Equal(t, annotation.Span{Begin: 18, End: 56}, fair.Span)
	assert.Equal(t, "interval_from_to", fair.FoundByRule)
	assert.Equal(t, "2024-03-29T00:00:00", fair.EarliestBegin)
	assert.Equal(t, "2024-03-29T23:59:59", fair.LatestBegin)
	assert.Equal(t, "2024-04-01T00:00:00", fair.EarliestEnd)
	assert.Equal(t, "2024-04-01T23:59:59", fair.LatestEnd)
	assert.Equal(t, "P3D", fair.EmptyValue)
	assert.Equal(t, "t1", fair.BeginAnchorID)
	assert.Equal(t, "t2", fair.EndAnchorID)

	wende := intervals[1]
	assert.Equal(t, "t100003", wende.ID)
	assert.Equal(t, "1990-10-03", wende.Value)
	assert.Equal(t, "1989-11-09", wende.EarliestBegin)

	year := intervals[2]
	assert.Equal(t, "t4", year.ID)
	assert.Equal(t, year.EarliestBegin, year.EarliestEnd)
	assert.Equal(t, year.LatestBegin, year.LatestEnd)
}

func TestTagger_SingleAnchorConfig(t *testing.T) {
	store := newFairDocument(t)

	tg, err := New(SingleAnchorConfig, nil)
	require.NoError(t, err)
	report, err := tg.Process(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, pairing.Result{}, report.Pairing)
	assert.Len(t, store.Intervals(), 4)
}

func TestTagger_ResolveOnlyConfig(t *testing.T) {
	store := newFairDocument(t)

	tg, err := New(ResolveOnlyConfig, nil)
	require.NoError(t, err)
	report, err := tg.Process(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Resolver.Resolved)
	assert.Empty(t, store.Intervals())
	assert.Len(t, store.Timexes(), 4)
}

func TestTagger_MalformedFunctionKeepsSpan(t *testing.T) {
	store := memory.New("Easter 24 was late.")
	tx := annotation.NewMockTimex("t1", 0, 9, annotation.KindDate, "2024 funcDateCalc(EasterSunday(24, 0))")
	require.NoError(t, store.AddTimex(tx))

	tg, err := New(DefaultConfig, nil)
	require.NoError(t, err)
	report, err := tg.Process(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Resolver.Failed)
	assert.Equal(t, resolver.Sentinel, tx.Value)
	assert.Len(t, store.Timexes(), 1)
	assert.Empty(t, store.Intervals())
}

func TestNew_InvalidRules(t *testing.T) {
	config := DefaultConfig
	config.Rules = []rules.Rule{{
		Name:       "broken",
		Pattern:    regexp.MustCompile(`(<TX3_\d+>)`),
		StartGroup: 1,
		EndGroup:   2,
	}}

	_, err := New(config, nil)
	assert.ErrorIs(t, err, rules.ErrInvalidRule)

	// Without pair matching the table is never used.
	config.MatchPairs = false
	_, err = New(config, nil)
	assert.NoError(t, err)
}

func TestTagger_RunID(t *testing.T) {
	var buf bytes.Buffer
	tg, err := New(DefaultConfig, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	ctx := logging.WithRunID(context.Background(), "doc-42")
	report, err := tg.Process(ctx, newFairDocument(t))
	require.NoError(t, err)

	assert.Equal(t, "doc-42", report.RunID)
	assert.Contains(t, buf.String(), "run_id=doc-42")
	assert.Contains(t, buf.String(), "document processed")
}

func TestTagger_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := newFairDocument(t)
	tg, err := New(DefaultConfig, nil)
	require.NoError(t, err)

	_, err = tg.Process(ctx, store)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "2024 funcDateCalc(EasterSunday(YEAR, -2))", store.Timexes()[0].Value)
}
