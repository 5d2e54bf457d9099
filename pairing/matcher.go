// Package pairing merges two intervals of the same sentence into one
// composite interval when an interval-pair rule matches the text between
// them, e.g. "from 1939 to 1945".
package pairing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/google/uuid"

	"github.com/cyp0633/libtimex/annotation"
	"github.com/cyp0633/libtimex/duration"
	"github.com/cyp0633/libtimex/rules"
)

// Result counts what a Match pass did.
type Result struct {
	// Sentences is the number of sentences that contained intervals.
	Sentences int
	Created   int
	// Duplicates counts composites dropped because an earlier rule already
	// produced the same span in the sentence.
	Duplicates int
	// Removed is the number of consumed anchor intervals.
	Removed int
}

// Matcher evaluates an ordered rule table sentence by sentence.
type Matcher struct {
	rules  []rules.Rule
	logger *slog.Logger
}

// New creates a matcher over rs. The table is evaluated in order, so for two
// rules yielding the same composite span the earlier one wins. A nil logger
// uses slog.Default().
func New(rs []rules.Rule, logger *slog.Logger) (*Matcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, r := range rs {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return &Matcher{
		rules:  append([]rules.Rule(nil), rs...),
		logger: logger,
	}, nil
}

// Match builds composite intervals in every sentence of store. Anchors used by
// a composite are removed once all sentences have been processed.
func (m *Matcher) Match(store annotation.Store) (Result, error) {
	var res Result
	consumed := mapset.New[*annotation.Interval]()

	for _, sent := range store.Sentences() {
		ivs := store.IntervalsWithin(sent.Span)
		if len(ivs) == 0 {
			continue
		}
		res.Sentences++

		text, refs := m.placeholder(store, sent, ivs)
		produced := mapset.New[annotation.Span]()

		for _, r := range m.rules {
			for _, groups := range r.Pattern.FindAllStringSubmatch(text, -1) {
				start, end, ok := m.anchors(r, groups, refs, sent)
				if !ok {
					continue
				}

				iv := compose(r.Name, start, end)
				if produced.Has(iv.Span) {
					m.logger.Debug("duplicate composite interval",
						"rule", r.Name,
						"sentence_id", sent.ID,
						"begin", iv.Begin,
						"end", iv.End)
					res.Duplicates++
					continue
				}
				if err := store.AddInterval(iv); err != nil {
					return res, fmt.Errorf("add composite interval for rule %q: %w", r.Name, err)
				}
				produced.Add(iv.Span)
				consumed.Add(start, end)
				res.Created++

				m.logger.Debug("created composite interval",
					"rule", r.Name,
					"begin_anchor", start.ID,
					"end_anchor", end.ID,
					"empty_value", iv.EmptyValue)
			}
		}
	}

	for iv := range consumed {
		if err := store.RemoveInterval(iv); err != nil {
			return res, fmt.Errorf("remove consumed interval %s: %w", iv.ID, err)
		}
		res.Removed++
	}
	return res, nil
}

// placeholder replaces each interval of the sentence with its marker and
// returns the rewritten text together with the intervals by marker number.
// An interval overlapping one already placed is left out.
func (m *Matcher) placeholder(store annotation.Store, sent *annotation.Sentence, ivs []*annotation.Interval) (string, []*annotation.Interval) {
	text := store.CoveredText(sent.Span)

	var (
		sb     strings.Builder
		refs   []*annotation.Interval
		cursor = sent.Begin
	)
	for _, iv := range ivs {
		if iv.Begin < cursor {
			m.logger.Debug("skipping overlapping interval",
				"interval_id", iv.ID,
				"sentence_id", sent.ID)
			continue
		}
		sb.WriteString(text[cursor-sent.Begin : iv.Begin-sent.Begin])
		sb.WriteString(rules.Marker(len(refs)))
		refs = append(refs, iv)
		cursor = iv.End
	}
	sb.WriteString(text[cursor-sent.Begin:])
	return sb.String(), refs
}

func (m *Matcher) anchors(r rules.Rule, groups []string, refs []*annotation.Interval, sent *annotation.Sentence) (start, end *annotation.Interval, ok bool) {
	si, err := markerIndex(groups[r.StartGroup], len(refs))
	if err == nil {
		var ei int
		ei, err = markerIndex(groups[r.EndGroup], len(refs))
		if err == nil {
			return refs[si], refs[ei], true
		}
	}
	m.logger.Warn("skipping rule match",
		"rule", r.Name,
		"sentence_id", sent.ID,
		"match", groups[0],
		"error", err)
	return nil, nil, false
}

func markerIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("marker %q is not a number", s)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("marker %d out of range [0,%d)", i, n)
	}
	return i, nil
}

// compose builds the composite of start and end. It begins in start's period
// and ends in end's period.
func compose(rule string, start, end *annotation.Interval) *annotation.Interval {
	iv := annotation.NewInterval(&start.Timex)
	iv.Span = annotation.Span{
		Begin: min(start.Begin, end.Begin),
		End:   max(start.End, end.End),
	}
	iv.ID = uuid.NewString()
	iv.Value = ""
	iv.FoundByRule = rule
	iv.EmptyValue = duration.Between(start.Value, end.Value)
	iv.SetBounds(start.EarliestBegin, start.LatestEnd, end.EarliestBegin, end.LatestEnd)
	iv.BeginAnchorID = start.ID
	iv.EndAnchorID = end.ID
	return iv
}
