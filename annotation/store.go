// Package annotation defines the span model shared by every normalization
// stage and the Store interface that connects them to a document's
// annotation index.
//
// Stores are owned by the caller. The stages read spans through the Store,
// mutate timex values in place with UpdateValue and UpdateEmptyValue, and add or remove
// intervals. A stage never removes a span while it is still iterating over
// the store; removals are collected and applied in one batch at the end of
// the stage.
package annotation

// Store is the annotation index of a single document.
type Store interface {
	// Text returns the document text all spans refer to.
	Text() string
	// CoveredText returns the substring of the document text at [Begin, End).
	CoveredText(s Span) string

	// Sentences returns all sentences ordered by Begin.
	Sentences() []*Sentence

	// Timexes returns the temporal expressions of the given kinds (all kinds if
	// none given), ordered by Begin with ties broken by insertion order.
	Timexes(kinds ...Kind) []*Timex
	// AddTimex inserts a temporal expression.
	AddTimex(t *Timex) error
	// RemoveTimex deletes a temporal expression.
	RemoveTimex(t *Timex) error
	// UpdateValue replaces the value of t in place.
	UpdateValue(t *Timex, value string)
	// UpdateEmptyValue replaces the secondary value of t in place.
	UpdateEmptyValue(t *Timex, value string)

	// Intervals returns all intervals ordered by Begin, then insertion order.
	Intervals() []*Interval
	// IntervalsWithin returns the intervals that lie entirely inside container.
	IntervalsWithin(container Span) []*Interval
	// AddInterval inserts an interval.
	AddInterval(i *Interval) error
	// RemoveInterval deletes an interval.
	RemoveInterval(i *Interval) error
}
