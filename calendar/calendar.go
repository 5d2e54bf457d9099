// Package calendar implements the date arithmetic behind holiday and
// interval normalization: Western and Orthodox Easter, ISO weeks, month
// lengths and weekday-relative lookups. All dates are civil dates in UTC.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the layout of a TIMEX calendar date.
const DateLayout = "2006-01-02"

// Date returns midnight UTC of the given civil date. Out-of-range months and
// days are normalized the way time.Date does.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return Date(year, month+1, 0).Day()
}

// ISOWeekday returns the ISO day of week, 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ISOWeekMonday returns the Monday of the given ISO week. Week 1 is the week
// containing the year's first Thursday, i.e. the week containing January 4.
func ISOWeekMonday(year, week int) time.Time {
	jan4 := Date(year, 1, 4)
	firstMonday := jan4.AddDate(0, 0, 1-ISOWeekday(jan4))
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

// ISOWeeksInYear returns the number of ISO weeks in year, 52 or 53.
func ISOWeeksInYear(year int) int {
	// December 28 always falls in the last ISO week.
	_, week := Date(year, 12, 28).ISOWeek()
	return week
}

// FormatISOWeek formats the ISO week containing t as YYYY-Wnn.
func FormatISOWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekdayRelativeTo finds the number-th occurrence of weekday (1=Monday ..
// 7=Sunday) relative to date.
//
// number 0 returns date unchanged. Positive numbers count forward, negative
// numbers backward, so -1 is the nearest occurrence before date. countItself
// decides whether date itself counts as an occurrence when it already falls
// on weekday.
func WeekdayRelativeTo(date time.Time, weekday, number int, countItself bool) time.Time {
	if number == 0 {
		return date
	}
	if number < 0 {
		number++
	}

	day := ISOWeekday(date)
	var add int
	if (countItself && number > 0) || (!countItself && number <= 0) {
		if day <= weekday {
			add = weekday - day
		} else {
			add = weekday - day + 7
		}
	} else {
		if day < weekday {
			add = weekday - day
		} else {
			add = weekday - day + 7
		}
	}
	add += (number - 1) * 7

	return date.AddDate(0, 0, add)
}
