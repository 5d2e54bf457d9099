// Package interval classifies normalized TIMEX values by granularity and
// expands each one into a fuzzy interval annotation.
package interval

import (
	"log/slog"

	"github.com/cyp0633/libtimex/annotation"
)

// Synthesizer creates one single-anchor interval per classifiable timex.
type Synthesizer struct {
	logger *slog.Logger
}

// NewSynthesizer creates a synthesizer. A nil logger uses slog.Default().
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{logger: logger}
}

// Synthesize adds an interval for every timex in the store whose value has a
// recognized shape and returns how many were added. Timexes with other values
// are left alone.
func (s *Synthesizer) Synthesize(store annotation.Store) int {
	created := 0
	for _, t := range store.Timexes() {
		iv, ok := FromTimex(t)
		if !ok {
			s.logger.Debug("no interval shape for value",
				"timex_id", t.ID,
				"value", t.Value)
			continue
		}

		if err := store.AddInterval(iv); err != nil {
			s.logger.Warn("failed to add interval",
				"timex_id", t.ID,
				"error", err)
			continue
		}
		created++
	}
	return created
}

// FromTimex builds the single-anchor interval of t: both the begin range and
// the end range are the period t's value denotes.
func FromTimex(t *annotation.Timex) (*annotation.Interval, bool) {
	shape, ok := Classify(t.Value)
	if !ok {
		return nil, false
	}

	p := shape.Period()
	iv := annotation.NewInterval(t)
	iv.SetBounds(p.Begin, p.End, p.Begin, p.End)
	return iv, true
}
