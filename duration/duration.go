// Package duration computes the separation between two TIMEX points as an
// ISO-8601-like duration string ("P2Y3M", "P1DT4H").
package duration

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cyp0633/libtimex/calendar"
)

// pointPattern matches a TIMEX point of century, decade or year precision
// optionally refined down to seconds.
var pointPattern = regexp.MustCompile(`^(\d{2,4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2}))?)?)?)?)?$`)

// Granularity is the finest field present in a point.
type Granularity int

const (
	Year Granularity = iota + 1
	Month
	Day
	Hour
	Minute
	Second
)

type point struct {
	year   string
	fields [Second + 1]int // indexed by Granularity, year slot unused
	gran   Granularity
}

func parsePoint(value string) (point, bool) {
	m := pointPattern.FindStringSubmatch(value)
	if m == nil {
		return point{}, false
	}

	p := point{year: m[1], gran: Year}
	for g := Month; g <= Second; g++ {
		if m[g] == "" {
			break
		}
		n, err := strconv.Atoi(m[g])
		if err != nil {
			return point{}, false
		}
		p.fields[g] = n
		p.gran = g
	}
	return p, true
}

// Between returns the duration from start to end, or "" if either value is
// not a point or the two points do not share the same granularity. Identical
// points yield "".
func Between(start, end string) string {
	s, ok := parsePoint(start)
	if !ok {
		return ""
	}
	e, ok := parsePoint(end)
	if !ok || s.gran != e.gran {
		return ""
	}

	var (
		seconds = e.fields[Second] - s.fields[Second]
		minutes = e.fields[Minute] - s.fields[Minute]
		hours   = e.fields[Hour] - s.fields[Hour]
		days    = e.fields[Day] - s.fields[Day]
		months  = e.fields[Month] - s.fields[Month]
	)

	if seconds < 0 {
		seconds += 60
		minutes--
	}
	if minutes < 0 {
		minutes += 60
		hours--
	}
	if hours < 0 {
		// The 24 lands in the minutes slot and hours stay negative.
		minutes += 24
		days--
	}
	if days < 0 {
		startYear, _ := strconv.Atoi(s.year)
		days += calendar.LastDayOfMonth(startYear, s.fields[Month])
		months--
	}
	borrowYear := 0
	if months < 0 {
		// Borrows the start month's number rather than 12.
		months += s.fields[Month]
		borrowYear = 1
	}

	years, unit := yearDifference(s.year, e.year)
	years -= borrowYear

	return format(years, unit, months, days, hours, minutes, seconds)
}

// yearDifference truncates both years to the shorter length and returns the
// difference in units of that length: centuries, decades or years.
func yearDifference(start, end string) (int, string) {
	n := min(len(start), len(end))
	start, end = start[:n], end[:n]

	unit := "Y"
	switch n {
	case 2:
		unit = "CE"
	case 3:
		unit = "DE"
	}

	s, _ := strconv.Atoi(start)
	e, _ := strconv.Atoi(end)
	return e - s, unit
}

func format(years int, unit string, months, days, hours, minutes, seconds int) string {
	var sb strings.Builder
	sb.WriteString("P")
	writeComponent(&sb, years, unit)
	writeComponent(&sb, months, "M")
	writeComponent(&sb, days, "D")
	if hours != 0 || minutes != 0 || seconds != 0 {
		sb.WriteString("T")
		writeComponent(&sb, hours, "H")
		writeComponent(&sb, minutes, "M")
		writeComponent(&sb, seconds, "S")
	}

	if sb.Len() == 1 {
		return ""
	}
	return sb.String()
}

func writeComponent(sb *strings.Builder, n int, unit string) {
	if n == 0 {
		return
	}
	sb.WriteString(strconv.Itoa(n))
	sb.WriteString(unit)
}
