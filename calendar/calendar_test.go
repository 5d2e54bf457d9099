package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestEasterSunday_KnownDates(t *testing.T) {
	tests := []struct {
		year     int
		expected string
	}{
		{1818, "1818-03-22"}, // earliest possible
		{1943, "1943-04-25"}, // latest possible
		{2000, "2000-04-23"},
		{2019, "2019-04-21"},
		{2021, "2021-04-04"},
		{2024, "2024-03-31"},
		{2025, "2025-04-20"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(EasterSunday(tt.year)))
		})
	}
}

func TestEasterSunday_MatchesRRule(t *testing.T) {
	for year := 1600; year <= 2400; year++ {
		r, err := rrule.NewRRule(rrule.ROption{
			Freq:     rrule.YEARLY,
			Dtstart:  time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			Byeaster: []int{0},
			Count:    1,
		})
		require.NoError(t, err)

		occurrences := r.All()
		require.Len(t, occurrences, 1, "year %d", year)
		assert.Equal(t, FormatDate(occurrences[0]), FormatDate(EasterSunday(year)), "year %d", year)
	}
}

func TestEasterSunday_Range(t *testing.T) {
	for year := 1000; year <= 9999; year++ {
		easter := EasterSunday(year)
		earliest := Date(year, 3, 22)
		latest := Date(year, 4, 25)
		if easter.Before(earliest) || easter.After(latest) {
			t.Fatalf("Easter %d on %s is outside Mar 22 .. Apr 25", year, FormatDate(easter))
		}
		if easter.Weekday() != time.Sunday {
			t.Fatalf("Easter %d on %s is not a Sunday", year, FormatDate(easter))
		}
	}
}

func TestEasterSundayOrthodox(t *testing.T) {
	tests := []struct {
		year     int
		expected string
	}{
		{2008, "2008-04-27"},
		{2010, "2010-04-04"}, // same day as Western Easter
		{2019, "2019-04-28"},
		{2021, "2021-05-02"},
		{2024, "2024-05-05"},
		{2025, "2025-04-20"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := EasterSundayOrthodox(tt.year)
			assert.Equal(t, tt.expected, FormatDate(got))
			assert.Equal(t, time.Sunday, got.Weekday())
		})
	}
}

func TestEasterSundayOrthodox_NotBeforeGregorian(t *testing.T) {
	for year := 1583; year < 2200; year++ {
		orthodox := EasterSundayOrthodox(year)
		western := EasterSunday(year)
		if orthodox.Before(western) {
			t.Fatalf("year %d: Orthodox %s before Western %s", year, FormatDate(orthodox), FormatDate(western))
		}
	}
}

func TestShroveTideOrthodox(t *testing.T) {
	got := ShroveTideOrthodox(2024)
	assert.Equal(t, "2024-03-17", FormatDate(got))
	assert.Equal(t, "2024-W11", FormatISOWeek(got))
}

func TestJulianOffset(t *testing.T) {
	tests := []struct {
		year     int
		expected int
	}{
		{1582, 10},
		{1699, 10},
		{1700, 11},
		{1850, 12},
		{1900, 13},
		{2099, 13},
		{2100, 14},
		{2200, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, JulianOffset(tt.year), "year %d", tt.year)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2024, 1))
	assert.Equal(t, 29, LastDayOfMonth(2024, 2))
	assert.Equal(t, 28, LastDayOfMonth(2023, 2))
	assert.Equal(t, 28, LastDayOfMonth(1900, 2))
	assert.Equal(t, 29, LastDayOfMonth(2000, 2))
	assert.Equal(t, 30, LastDayOfMonth(2024, 4))
	assert.Equal(t, 31, LastDayOfMonth(2024, 12))
}

func TestISOWeekMonday(t *testing.T) {
	tests := []struct {
		year, week int
		expected   string
	}{
		{2021, 1, "2021-01-04"},
		{2020, 1, "2019-12-30"},
		{2020, 53, "2020-12-28"},
		{2024, 11, "2024-03-11"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			monday := ISOWeekMonday(tt.year, tt.week)
			assert.Equal(t, tt.expected, FormatDate(monday))
			assert.Equal(t, time.Monday, monday.Weekday())

			year, week := monday.ISOWeek()
			assert.Equal(t, tt.year, year)
			assert.Equal(t, tt.week, week)
		})
	}
}

func TestISOWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, ISOWeeksInYear(2020))
	assert.Equal(t, 52, ISOWeeksInYear(2021))
	assert.Equal(t, 52, ISOWeeksInYear(2024))
	assert.Equal(t, 53, ISOWeeksInYear(2026))
}

func TestWeekdayRelativeTo(t *testing.T) {
	tests := []struct {
		name        string
		date        string
		weekday     int
		number      int
		countItself bool
		expected    string
	}{
		{"zero occurrence returns date", "2024-05-01", 7, 0, true, "2024-05-01"},
		{"second Sunday of May", "2024-05-01", 7, 2, true, "2024-05-12"},
		{"fourth Thursday of November", "2024-11-01", 4, 4, true, "2024-11-28"},
		{"last Monday before June", "2024-06-01", 1, -1, false, "2024-05-27"},
		{"first Monday counting itself", "2024-09-02", 1, 1, true, "2024-09-02"},
		{"first Monday not counting itself", "2024-09-02", 1, 1, false, "2024-09-09"},
		{"previous Wednesday not counting itself", "2024-05-01", 3, -1, false, "2024-04-24"},
		{"previous Wednesday counting itself", "2024-05-01", 3, -1, true, "2024-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseDate(tt.date)
			require.NoError(t, err)
			got := WeekdayRelativeTo(date, tt.weekday, tt.number, tt.countItself)
			assert.Equal(t, tt.expected, FormatDate(got))
		})
	}
}
