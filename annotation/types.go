package annotation

import (
	"fmt"
)

// Error types
type ErrorType string

const (
	ErrNotFound      ErrorType = "not_found"
	ErrAlreadyExists ErrorType = "already_exists"
	ErrInvalidInput  ErrorType = "invalid_input"
)

// Error represents an annotation store error
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind is the TIMEX3 type of a temporal expression.
type Kind string

const (
	KindDate     Kind = "DATE"
	KindTime     Kind = "TIME"
	KindDuration Kind = "DURATION"
	KindSet      Kind = "SET"
	KindTemponym Kind = "TEMPONYM"
)

// Span is a half-open character range [Begin, End) over the document text.
type Span struct {
	Begin int
	End   int
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return s.Begin <= o.Begin && o.End <= s.End
}

// Valid reports whether the span is non-empty and fits in a text of the given length.
func (s Span) Valid(textLen int) bool {
	return s.Begin >= 0 && s.Begin < s.End && s.End <= textLen
}

// Sentence is a container span used for sentence-scoped queries.
type Sentence struct {
	Span
	ID string
}

// Timex is a temporal expression annotated by the upstream extraction grammar.
type Timex struct {
	Span
	Kind Kind
	// Value is the (partially) normalized TIMEX value, e.g. "1999-W03",
	// "2009-00-00 funcDateCalc(EasterSunday(YEAR, -2))" or, for temponyms,
	// a bracket quadruple "[EB, LB, EE, LE]".
	Value string
	// EmptyValue is a secondary value. Intervals store their duration here;
	// temponyms spanning a real range keep their bracket value here.
	EmptyValue string

	Quant string
	Freq  string
	Mod   string

	ID          string
	FoundByRule string

	// Bookkeeping passed through to derived annotations untouched.
	SentenceID  string
	AllTokenIDs string
	Filename    string
}

// Interval is a fuzzy interval derived from one or two Timex anchors.
//
// [EarliestBegin, LatestBegin] is the range the interval may have started in and
// [EarliestEnd, LatestEnd] the range it may have ended in.
type Interval struct {
	Timex

	EarliestBegin string
	LatestBegin   string
	EarliestEnd   string
	LatestEnd     string

	BeginAnchorID string
	EndAnchorID   string
}

// NewInterval creates an interval that copies location, modifiers and
// bookkeeping from src and is anchored on src at both ends.
func NewInterval(src *Timex) *Interval {
	return &Interval{
		Timex: Timex{
			Span:        src.Span,
			Kind:        src.Kind,
			Value:       src.Value,
			Quant:       src.Quant,
			Freq:        src.Freq,
			Mod:         src.Mod,
			ID:          src.ID,
			FoundByRule: src.FoundByRule,
			SentenceID:  src.SentenceID,
			AllTokenIDs: src.AllTokenIDs,
			Filename:    src.Filename,
		},
		BeginAnchorID: src.ID,
		EndAnchorID:   src.ID,
	}
}

// SetBounds sets all four bound fields.
func (i *Interval) SetBounds(eb, lb, ee, le string) {
	i.EarliestBegin = eb
	i.LatestBegin = lb
	i.EarliestEnd = ee
	i.LatestEnd = le
}
