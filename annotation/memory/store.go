// memory based implementation for testing purposes and small documents
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cyp0633/libtimex/annotation"
)

// Store implements annotation.Store on top of in-memory slices.
//
// Spans are kept in insertion order; readers get a snapshot sorted stably by
// Begin, so ties keep insertion order.
type Store struct {
	mu        sync.RWMutex
	text      string
	sentences []*annotation.Sentence
	timexes   []*annotation.Timex
	intervals []*annotation.Interval
}

// New creates an empty store over the given document text
func New(text string) *Store {
	return &Store{text: text}
}

func (s *Store) Text() string {
	return s.text
}

func (s *Store) CoveredText(sp annotation.Span) string {
	if !sp.Valid(len(s.text)) {
		return ""
	}
	return s.text[sp.Begin:sp.End]
}

// Sentence operations

// AddSentence registers a sentence container.
func (s *Store) AddSentence(sent *annotation.Sentence) error {
	if !sent.Valid(len(s.text)) {
		return invalidSpan("sentence", sent.Span)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.sentences, sent) {
		return &annotation.Error{
			Type:    annotation.ErrAlreadyExists,
			Message: "sentence already exists",
		}
	}
	s.sentences = append(s.sentences, sent)
	return nil
}

func (s *Store) Sentences() []*annotation.Sentence {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.sentences)
	slices.SortStableFunc(out, func(a, b *annotation.Sentence) int { return a.Begin - b.Begin })
	return out
}

// Timex operations

func (s *Store) Timexes(kinds ...annotation.Kind) []*annotation.Timex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*annotation.Timex
	for _, t := range s.timexes {
		if len(kinds) > 0 && !slices.Contains(kinds, t.Kind) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b *annotation.Timex) int { return a.Begin - b.Begin })
	return out
}

func (s *Store) AddTimex(t *annotation.Timex) error {
	if !t.Valid(len(s.text)) {
		return invalidSpan("timex", t.Span)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.timexes, t) {
		return &annotation.Error{
			Type:    annotation.ErrAlreadyExists,
			Message: "timex already exists",
		}
	}
	s.timexes = append(s.timexes, t)
	return nil
}

func (s *Store) RemoveTimex(t *annotation.Timex) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.timexes, t)
	if idx < 0 {
		return &annotation.Error{
			Type:    annotation.ErrNotFound,
			Message: "timex not found",
		}
	}
	s.timexes = slices.Delete(s.timexes, idx, idx+1)
	return nil
}

func (s *Store) UpdateValue(t *annotation.Timex, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Value = value
}

func (s *Store) UpdateEmptyValue(t *annotation.Timex, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.EmptyValue = value
}

// Interval operations

func (s *Store) Intervals() []*annotation.Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.intervals)
	slices.SortStableFunc(out, compareIntervals)
	return out
}

func (s *Store) IntervalsWithin(container annotation.Span) []*annotation.Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*annotation.Interval
	for _, i := range s.intervals {
		if container.Contains(i.Span) {
			out = append(out, i)
		}
	}
	slices.SortStableFunc(out, compareIntervals)
	return out
}

func (s *Store) AddInterval(i *annotation.Interval) error {
	if !i.Valid(len(s.text)) {
		return invalidSpan("interval", i.Span)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.intervals, i) {
		return &annotation.Error{
			Type:    annotation.ErrAlreadyExists,
			Message: "interval already exists",
		}
	}
	s.intervals = append(s.intervals, i)
	return nil
}

func (s *Store) RemoveInterval(i *annotation.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.Index(s.intervals, i)
	if idx < 0 {
		return &annotation.Error{
			Type:    annotation.ErrNotFound,
			Message: "interval not found",
		}
	}
	s.intervals = slices.Delete(s.intervals, idx, idx+1)
	return nil
}

func compareIntervals(a, b *annotation.Interval) int {
	return a.Begin - b.Begin
}

func invalidSpan(what string, sp annotation.Span) error {
	return &annotation.Error{
		Type:    annotation.ErrInvalidInput,
		Message: what + " span out of bounds",
		Err:     fmt.Errorf("[%d,%d)", sp.Begin, sp.End),
	}
}

var _ annotation.Store = (*Store)(nil)
