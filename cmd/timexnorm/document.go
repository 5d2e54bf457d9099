package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tailscale/hujson"

	"github.com/cyp0633/libtimex/annotation"
	"github.com/cyp0633/libtimex/annotation/memory"
)

// document is the JSON fixture format read by "timexnorm run". Comments and
// trailing commas are allowed.
type document struct {
	Text      string         `json:"text"`
	Sentences []sentenceJSON `json:"sentences"`
	Timexes   []timexJSON    `json:"timexes"`
}

type sentenceJSON struct {
	ID    string `json:"id"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
}

type timexJSON struct {
	ID          string `json:"id"`
	Begin       int    `json:"begin"`
	End         int    `json:"end"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	EmptyValue  string `json:"empty_value,omitempty"`
	Quant       string `json:"quant,omitempty"`
	Freq        string `json:"freq,omitempty"`
	Mod         string `json:"mod,omitempty"`
	Rule        string `json:"rule,omitempty"`
	SentenceID  string `json:"sentence_id,omitempty"`
	AllTokenIDs string `json:"tokens,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

type intervalJSON struct {
	timexJSON
	EarliestBegin string `json:"earliest_begin"`
	LatestBegin   string `json:"latest_begin"`
	EarliestEnd   string `json:"earliest_end"`
	LatestEnd     string `json:"latest_end"`
	BeginAnchor   string `json:"begin_anchor"`
	EndAnchor     string `json:"end_anchor"`
}

type result struct {
	RunID     string         `json:"run_id"`
	Timexes   []timexJSON    `json:"timexes"`
	Intervals []intervalJSON `json:"intervals"`
}

func readDocument(r io.Reader) (*memory.Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	store := memory.New(doc.Text)
	for _, s := range doc.Sentences {
		sent := &annotation.Sentence{Span: annotation.Span{Begin: s.Begin, End: s.End}, ID: s.ID}
		if err := store.AddSentence(sent); err != nil {
			return nil, fmt.Errorf("sentence %s: %w", s.ID, err)
		}
	}
	for _, tj := range doc.Timexes {
		if err := store.AddTimex(tj.timex()); err != nil {
			return nil, fmt.Errorf("timex %s: %w", tj.ID, err)
		}
	}
	return store, nil
}

func (tj timexJSON) timex() *annotation.Timex {
	return &annotation.Timex{
		Span:        annotation.Span{Begin: tj.Begin, End: tj.End},
		Kind:        annotation.Kind(tj.Type),
		Value:       tj.Value,
		EmptyValue:  tj.EmptyValue,
		Quant:       tj.Quant,
		Freq:        tj.Freq,
		Mod:         tj.Mod,
		ID:          tj.ID,
		FoundByRule: tj.Rule,
		SentenceID:  tj.SentenceID,
		AllTokenIDs: tj.AllTokenIDs,
		Filename:    tj.Filename,
	}
}

func toTimexJSON(t *annotation.Timex) timexJSON {
	return timexJSON{
		ID:          t.ID,
		Begin:       t.Begin,
		End:         t.End,
		Type:        string(t.Kind),
		Value:       t.Value,
		EmptyValue:  t.EmptyValue,
		Quant:       t.Quant,
		Freq:        t.Freq,
		Mod:         t.Mod,
		Rule:        t.FoundByRule,
		SentenceID:  t.SentenceID,
		AllTokenIDs: t.AllTokenIDs,
		Filename:    t.Filename,
	}
}

func newResult(runID string, store annotation.Store) result {
	res := result{
		RunID:     runID,
		Timexes:   []timexJSON{},
		Intervals: []intervalJSON{},
	}
	for _, t := range store.Timexes() {
		res.Timexes = append(res.Timexes, toTimexJSON(t))
	}
	for _, iv := range store.Intervals() {
		res.Intervals = append(res.Intervals, intervalJSON{
			timexJSON:     toTimexJSON(&iv.Timex),
			EarliestBegin: iv.EarliestBegin,
			LatestBegin:   iv.LatestBegin,
			EarliestEnd:   iv.EarliestEnd,
			LatestEnd:     iv.LatestEnd,
			BeginAnchor:   iv.BeginAnchorID,
			EndAnchor:     iv.EndAnchorID,
		})
	}
	return res
}
