// Package temponym turns temponym annotations, whose value is an explicit
// bound quadruple "[EB, LB, EE, LE]", into interval annotations.
package temponym

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"

	"github.com/cyp0633/libtimex/annotation"
)

// IDOffset is added to the source id of a derived interval so it cannot
// collide with the ids of ordinary intervals.
const IDOffset = 100000

var (
	ErrMalformedBounds = errors.New("malformed temponym bounds")

	trailingNumber = regexp.MustCompile(`^(.*?)(\d+)$`)
)

// Bounds is a parsed temponym value.
type Bounds struct {
	EarliestBegin string
	LatestBegin   string
	EarliestEnd   string
	LatestEnd     string
}

// Degenerate reports whether all four bounds are the same value.
func (b Bounds) Degenerate() bool {
	return b.EarliestBegin == b.LatestBegin &&
		b.LatestBegin == b.EarliestEnd &&
		b.EarliestEnd == b.LatestEnd
}

// ParseBounds parses "[EB, LB, EE, LE]".
func ParseBounds(value string) (Bounds, error) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return Bounds{}, fmt.Errorf("%w: %q is not bracketed", ErrMalformedBounds, value)
	}

	parts := strings.Split(v[1:len(v)-1], ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("%w: %q has %d bounds, want 4", ErrMalformedBounds, value, len(parts))
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return Bounds{}, fmt.Errorf("%w: %q has an empty bound", ErrMalformedBounds, value)
		}
	}
	return Bounds{
		EarliestBegin: parts[0],
		LatestBegin:   parts[1],
		EarliestEnd:   parts[2],
		LatestEnd:     parts[3],
	}, nil
}

// DerivedID returns the id of the interval derived from the temponym with the
// given id: its trailing number plus IDOffset, or IDOffset appended when the
// id does not end in a number.
func DerivedID(id string) string {
	m := trailingNumber.FindStringSubmatch(id)
	if m == nil {
		return id + strconv.Itoa(IDOffset)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return id + strconv.Itoa(IDOffset)
	}
	return m[1] + strconv.Itoa(n+IDOffset)
}

// Result counts what an Extract pass did.
type Result struct {
	Extracted int
	// Collapsed counts temponyms whose four bounds were identical.
	Collapsed int
	Malformed int
	Removed   int
}

// Extractor converts temponyms to intervals.
type Extractor struct {
	logger *slog.Logger
}

// New creates an extractor. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract adds an interval for every temponym in store and removes the
// temponyms afterwards. Temponyms with malformed values are kept.
func (e *Extractor) Extract(store annotation.Store) Result {
	var res Result
	processed := mapset.New[*annotation.Timex]()

	for _, t := range store.Timexes(annotation.KindTemponym) {
		b, err := ParseBounds(t.Value)
		if err != nil {
			e.logger.Warn("skipping temponym",
				"timex_id", t.ID,
				"value", t.Value,
				"error", err)
			res.Malformed++
			continue
		}

		iv := annotation.NewInterval(t)
		iv.ID = DerivedID(t.ID)
		iv.SetBounds(b.EarliestBegin, b.LatestBegin, b.EarliestEnd, b.LatestEnd)

		// Consumers expecting a single value get the latest end.
		iv.Value = b.LatestEnd
		if b.Degenerate() {
			iv.Value = b.EarliestBegin
		}

		if err := store.AddInterval(iv); err != nil {
			e.logger.Warn("failed to add temponym interval",
				"timex_id", t.ID,
				"error", err)
			continue
		}

		if b.Degenerate() {
			res.Collapsed++
		} else {
			store.UpdateEmptyValue(t, t.Value)
		}
		store.UpdateValue(t, iv.Value)
		processed.Add(t)
		res.Extracted++
	}

	for t := range processed {
		if err := store.RemoveTimex(t); err != nil {
			e.logger.Warn("failed to remove temponym",
				"timex_id", t.ID,
				"error", err)
			continue
		}
		res.Removed++
	}
	return res
}
