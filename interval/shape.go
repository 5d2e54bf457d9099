package interval

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/samber/mo"

	"github.com/cyp0633/libtimex/calendar"
)

// Period is the widest range of instants a TIMEX value can denote, as
// YYYY-MM-DDThh:mm:ss timestamps.
type Period struct {
	Begin string
	End   string
}

// Shape is a classified TIMEX value.
type Shape interface {
	// Period expands the shape into its begin and end timestamps, widening every
	// field the value leaves out.
	Period() Period
}

var (
	fullDatePattern  = regexp.MustCompile(`^(BC)?(\d{4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2}))?)?)?)?)?$`)
	centuryPattern   = regexp.MustCompile(`^(\d{2})$`)
	decadePattern    = regexp.MustCompile(`^(\d{3})$`)
	quarterPattern   = regexp.MustCompile(`^(\d{4})-Q([1-4])$`)
	halfPattern      = regexp.MustCompile(`^(\d{4})-H([12])$`)
	seasonPattern    = regexp.MustCompile(`^(\d{4})-(SP|SU|FA|WI)$`)
	weekPattern      = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)
	weekendPattern   = regexp.MustCompile(`^(\d{4})-W(\d{2})-WE$`)
	timeOfDayPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(AF|DT|MI|MO|EV|NI)$`)
)

// Classify determines the shape of a normalized TIMEX value. The patterns are
// tried in a fixed order and the first match wins; values matching none of
// them report false.
func Classify(value string) (Shape, bool) {
	if m := fullDatePattern.FindStringSubmatch(value); m != nil {
		return parseFullDate(m)
	}
	if m := centuryPattern.FindStringSubmatch(value); m != nil {
		return Century{Digits: m[1]}, true
	}
	if m := decadePattern.FindStringSubmatch(value); m != nil {
		return Decade{Digits: m[1]}, true
	}
	if m := quarterPattern.FindStringSubmatch(value); m != nil {
		return Quarter{Year: atoi(m[1]), N: atoi(m[2])}, true
	}
	if m := halfPattern.FindStringSubmatch(value); m != nil {
		return Half{Year: atoi(m[1]), N: atoi(m[2])}, true
	}
	if m := seasonPattern.FindStringSubmatch(value); m != nil {
		return Season{Year: atoi(m[1]), Code: m[2]}, true
	}
	if m := weekPattern.FindStringSubmatch(value); m != nil {
		year, week := atoi(m[1]), atoi(m[2])
		if !validWeek(year, week) {
			return nil, false
		}
		return Week{Year: year, Week: week}, true
	}
	if m := weekendPattern.FindStringSubmatch(value); m != nil {
		year, week := atoi(m[1]), atoi(m[2])
		if !validWeek(year, week) {
			return nil, false
		}
		return Weekend{Year: year, Week: week}, true
	}
	if m := timeOfDayPattern.FindStringSubmatch(value); m != nil {
		year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if !validDay(year, month, day) {
			return nil, false
		}
		return TimeOfDay{Year: year, Month: month, Day: day, Part: m[4]}, true
	}
	return nil, false
}

func parseFullDate(m []string) (Shape, bool) {
	d := FullDate{
		BC:     m[1] != "",
		Year:   atoi(m[2]),
		Month:  optional(m[3]),
		Day:    optional(m[4]),
		Hour:   optional(m[5]),
		Minute: optional(m[6]),
		Second: optional(m[7]),
	}
	if month, ok := d.Month.Get(); ok && (month < 1 || month > 12) {
		return nil, false
	}
	if day, ok := d.Day.Get(); ok && !validDay(d.Year, d.Month.MustGet(), day) {
		return nil, false
	}
	if !inRange(d.Hour, 23) || !inRange(d.Minute, 59) || !inRange(d.Second, 59) {
		return nil, false
	}
	return d, true
}

func validDay(year, month, day int) bool {
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= calendar.LastDayOfMonth(year, month)
}

func validWeek(year, week int) bool {
	return week >= 1 && week <= calendar.ISOWeeksInYear(year)
}

func inRange(field mo.Option[int], max int) bool {
	v, ok := field.Get()
	return !ok || v <= max
}

func optional(s string) mo.Option[int] {
	if s == "" {
		return mo.None[int]()
	}
	return mo.Some(atoi(s))
}

// atoi is only applied to digit-only submatches.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// FullDate is a calendar point from year down to second precision, e.g.
// "1999", "1999-12-31T23:59".
type FullDate struct {
	BC     bool
	Year   int
	Month  mo.Option[int]
	Day    mo.Option[int]
	Hour   mo.Option[int]
	Minute mo.Option[int]
	Second mo.Option[int]
}

func (d FullDate) Period() Period {
	year := yearString(d.Year)
	if d.BC {
		year = "BC" + year
	}

	beginMonth := d.Month.OrElse(1)
	endMonth := d.Month.OrElse(12)

	return Period{
		Begin: stamp(year, beginMonth, d.Day.OrElse(1),
			d.Hour.OrElse(0), d.Minute.OrElse(0), d.Second.OrElse(0)),
		End: stamp(year, endMonth, d.Day.OrElse(calendar.LastDayOfMonth(d.Year, endMonth)),
			d.Hour.OrElse(23), d.Minute.OrElse(59), d.Second.OrElse(59)),
	}
}

// Century is a two-digit century value, "19" for 1900-1999.
type Century struct {
	Digits string
}

func (c Century) Period() Period {
	return Period{
		Begin: stamp(c.Digits+"00", 1, 1, 0, 0, 0),
		End:   stamp(c.Digits+"99", 12, 31, 23, 59, 59),
	}
}

// Decade is a three-digit decade value, "198" for 1980-1989.
type Decade struct {
	Digits string
}

func (d Decade) Period() Period {
	return Period{
		Begin: stamp(d.Digits+"0", 1, 1, 0, 0, 0),
		End:   stamp(d.Digits+"9", 12, 31, 23, 59, 59),
	}
}

// Quarter is a YYYY-Qn value.
type Quarter struct {
	Year int
	N    int
}

func (q Quarter) Period() Period {
	return monthRange(q.Year, 3*q.N-2, 3*q.N)
}

// Half is a YYYY-Hn value.
type Half struct {
	Year int
	N    int
}

func (h Half) Period() Period {
	return monthRange(h.Year, 6*h.N-5, 6*h.N)
}

// Season is a YYYY-SP|SU|FA|WI value. Winter runs into the following year.
type Season struct {
	Year int
	Code string
}

func (s Season) Period() Period {
	year := yearString(s.Year)
	switch s.Code {
	case "SP":
		return Period{Begin: stamp(year, 3, 21, 0, 0, 0), End: stamp(year, 6, 20, 23, 59, 59)}
	case "SU":
		return Period{Begin: stamp(year, 6, 21, 0, 0, 0), End: stamp(year, 9, 22, 23, 59, 59)}
	case "FA":
		return Period{Begin: stamp(year, 9, 23, 0, 0, 0), End: stamp(year, 12, 21, 23, 59, 59)}
	default:
		return Period{Begin: stamp(year, 12, 22, 0, 0, 0), End: stamp(yearString(s.Year+1), 3, 20, 23, 59, 59)}
	}
}

// Week is a YYYY-Wnn ISO week value.
type Week struct {
	Year int
	Week int
}

func (w Week) Period() Period {
	monday := calendar.ISOWeekMonday(w.Year, w.Week)
	return dayRange(monday, monday.AddDate(0, 0, 6))
}

// Weekend is a YYYY-Wnn-WE value, the Saturday and Sunday of an ISO week.
type Weekend struct {
	Year int
	Week int
}

func (w Weekend) Period() Period {
	monday := calendar.ISOWeekMonday(w.Year, w.Week)
	return dayRange(monday.AddDate(0, 0, 5), monday.AddDate(0, 0, 6))
}

// TimeOfDay is a YYYY-MM-DDT<part> value such as "2024-05-01TMO". The part of
// day does not narrow the period; it spans the whole calendar day.
type TimeOfDay struct {
	Year  int
	Month int
	Day   int
	Part  string
}

func (t TimeOfDay) Period() Period {
	year := yearString(t.Year)
	return Period{
		Begin: stamp(year, t.Month, t.Day, 0, 0, 0),
		End:   stamp(year, t.Month, t.Day, 23, 59, 59),
	}
}

func monthRange(year, first, last int) Period {
	y := yearString(year)
	return Period{
		Begin: stamp(y, first, 1, 0, 0, 0),
		End:   stamp(y, last, calendar.LastDayOfMonth(year, last), 23, 59, 59),
	}
}

func dayRange(first, last time.Time) Period {
	fy, fm, fd := first.Date()
	ly, lm, ld := last.Date()
	return Period{
		Begin: stamp(yearString(fy), int(fm), fd, 0, 0, 0),
		End:   stamp(yearString(ly), int(lm), ld, 23, 59, 59),
	}
}

func yearString(year int) string {
	return fmt.Sprintf("%04d", year)
}

func stamp(year string, month, day, hour, minute, second int) string {
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d", year, month, day, hour, minute, second)
}
